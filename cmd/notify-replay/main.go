// notify-replay runs a recorded SNS event through the notification pipeline
// from the command line. It is meant for testing webhook formatting and
// sink configuration without redeploying the function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/config"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/enrich"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/envelope"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/logging"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/normalize"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/pipeline"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/sink"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultConfigPath = "./config.yml"

// Flags defines the CLI flags.
type Flags struct {
	Config string `short:"c" long:"config" description:"Path to the config file"`
	Event  string `short:"e" long:"event" description:"Path to a recorded SNS event JSON file" required:"true"`
}

// GetConfigPath implements config.Flags.
func (f Flags) GetConfigPath() string {
	if f.Config == "" {
		return defaultConfigPath
	}

	return f.Config
}

// IsExplicitConfigPath implements config.Flags.
func (f Flags) IsExplicitConfigPath() bool {
	return f.Config != ""
}

// Config is the complete configuration of the replay run.
type Config struct {
	Sinks   sink.Config    `yaml:"sinks"`
	Logging logging.Config `yaml:"logging" envPrefix:"LOG_"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if err := c.Sinks.Validate(); err != nil {
		return errors.WithStack(err)
	}

	return c.Logging.Validate()
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var flags Flags
	if err := config.ParseFlags(&flags); err != nil {
		return errors.WithStack(err)
	}

	var cfg Config
	if err := config.Load(&cfg, config.LoadOptions{Flags: flags, EnvOptions: config.EnvOptions{}}); err != nil {
		return errors.WithStack(err)
	}

	logs, err := logging.NewLoggingFromConfig("notify-replay", cfg.Logging)
	if err != nil {
		return errors.WithStack(err)
	}

	log := logs.GetLogger()

	raw, err := os.ReadFile(flags.Event) // #nosec G304 -- open user supplied event file
	if err != nil {
		return errors.Wrapf(err, "can't read event file %q", flags.Event)
	}

	var e events.SNSEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return errors.Wrapf(err, "can't decode event file %q", flags.Event)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "can't load AWS configuration")
	}

	normalizer := normalize.New(
		logs.GetChildLogger("normalize"),
		enrich.NewCloudWatchTags(cloudwatch.NewFromConfig(awsCfg), logs.GetChildLogger("enrich")),
		enrich.NewLambdaRuntime(awsCfg.Region),
	)
	pipe := pipeline.New(logs.GetChildLogger("pipeline"), normalizer)
	fanout := sink.NewFanout(cfg.Sinks, logs.GetChildLogger("sink"))

	result := pipe.Process(ctx, envelope.FromSNSEvent(e))
	for _, n := range result.Notifications {
		log.Infow("normalized notification", zap.String("title", n.Title))
	}

	deliveries := fanout.Dispatch(ctx, result.Notifications)
	for _, d := range deliveries {
		if d.Err == nil {
			log.Infow("delivered", zap.String("sink", d.Sink), zap.String("title", d.Title))
		}
	}

	if err := sink.Err(deliveries); err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return errors.Errorf("%d of %d records failed to normalize", len(result.Errors), len(e.Records))
	}

	return nil
}
