// Package enrich implements the collaborators the normalizers depend on:
// alarm tag lookup via the CloudWatch API and the execution context of the
// running function.
package enrich

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/backoff"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/logging"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/normalize"
	"github.com/gocloudLa/terraform-aws-wrapper-notifications/retry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TagsAPI is the subset of the CloudWatch API used for tag lookups.
type TagsAPI interface {
	ListTagsForResource(
		ctx context.Context, params *cloudwatch.ListTagsForResourceInput, optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.ListTagsForResourceOutput, error)
}

// CloudWatchTags looks up alarm tags via the CloudWatch API,
// implementing normalize.TagProvider.
type CloudWatchTags struct {
	log *logging.Logger
	api TagsAPI
}

// NewCloudWatchTags returns a CloudWatchTags using the given API client.
func NewCloudWatchTags(api TagsAPI, log *logging.Logger) *CloudWatchTags {
	return &CloudWatchTags{log: log, api: api}
}

// AlarmTags returns the tags attached to the alarm resource, preserving the
// order the API returned them in. Transient transport errors are retried
// with backoff, bounded by the context and the retry timeout.
func (c *CloudWatchTags) AlarmTags(ctx context.Context, resourceArn string) ([]normalize.Tag, error) {
	var out *cloudwatch.ListTagsForResourceOutput

	err := retry.WithBackoff(
		ctx,
		func(ctx context.Context) (err error) {
			out, err = c.api.ListTagsForResource(ctx, &cloudwatch.ListTagsForResourceInput{
				ResourceARN: aws.String(resourceArn),
			})
			return
		},
		retry.Retryable,
		backoff.DefaultBackoff,
		retry.Settings{
			Timeout: retry.DefaultTimeout,
			OnRetryableError: func(elapsed time.Duration, attempt uint64, err, _ error) {
				c.log.Warnw("can't list alarm tags, retrying",
					zap.Uint64("attempt", attempt), zap.Duration("elapsed", elapsed), logging.Error(err))
			},
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "can't list tags for resource %q", resourceArn)
	}

	tags := make([]normalize.Tag, 0, len(out.Tags))
	for _, tag := range out.Tags {
		tags = append(tags, normalize.Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}

	return tags, nil
}
