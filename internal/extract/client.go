package extract

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"

	"github.com/finwerk/docpipe/internal/common"
)

// NewTextractClient builds a Textract client from pipeline configuration.
// When no static keys are configured the SDK falls back to its default
// credential chain (environment, IAM role, etc.).
func NewTextractClient(cfg common.AWSConfig) *textract.Client {
	awsConfig := aws.Config{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token
		)
	}
	return textract.NewFromConfig(awsConfig)
}
