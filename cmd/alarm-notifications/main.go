// alarm-notifications is the Lambda entrypoint of the notification relay:
// it receives SNS-delivered monitoring events, normalizes them into
// canonical notifications and fans them out to the configured chat webhooks.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
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

const appName = "alarm-notifications"

// Config is the complete configuration of the notification function,
// loaded entirely from environment variables on Lambda.
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
	var cfg Config
	if err := config.FromEnv(&cfg, config.EnvOptions{}); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logs, err := logging.NewLoggingFromConfig(appName, cfg.Logging)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logs.GetLogger()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalw("can't load AWS configuration", logging.Error(err))
	}

	normalizer := normalize.New(
		logs.GetChildLogger("normalize"),
		enrich.NewCloudWatchTags(cloudwatch.NewFromConfig(awsCfg), logs.GetChildLogger("enrich")),
		enrich.NewLambdaRuntime(awsCfg.Region),
	)
	pipe := pipeline.New(logs.GetChildLogger("pipeline"), normalizer)
	fanout := sink.NewFanout(cfg.Sinks, logs.GetChildLogger("sink"))

	log.Infow("starting handler", zap.Strings("sinks", fanout.Active()))

	lambda.Start(newHandler(pipe, fanout))
}

// newHandler returns the SNS event handler. It surfaces per-record and
// per-delivery failures together; the Lambda runtime decides whether to
// retry the whole batch.
func newHandler(pipe *pipeline.Pipeline, fanout *sink.Fanout) func(ctx context.Context, e events.SNSEvent) error {
	return func(ctx context.Context, e events.SNSEvent) error {
		result := pipe.Process(ctx, envelope.FromSNSEvent(e))
		deliveries := fanout.Dispatch(ctx, result.Notifications)

		return stderrors.Join(stderrors.Join(result.Errors...), sink.Err(deliveries))
	}
}
