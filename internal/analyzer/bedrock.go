package analyzer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

// retrieveAndGenerateAPI is the subset of the Bedrock agent runtime
// client we call. *bedrockagentruntime.Client satisfies it.
type retrieveAndGenerateAPI interface {
	RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

// BedrockAnalyzer implements Analyzer via the Bedrock
// retrieve-and-generate API with the invoice's S3 location as an
// external source. The document never leaves AWS; the local copy is
// only kept for the review application.
type BedrockAnalyzer struct {
	client   retrieveAndGenerateAPI
	modelARN string
}

// NewBedrockAnalyzer creates the default analyzer. The model ARN is
// derived from the configured model ID and the resolved region.
func NewBedrockAnalyzer(ctx context.Context, modelID string) (*BedrockAnalyzer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &BedrockAnalyzer{
		client:   bedrockagentruntime.NewFromConfig(awsCfg),
		modelARN: fmt.Sprintf("arn:aws:bedrock:%s::foundation-model/%s", awsCfg.Region, modelID),
	}, nil
}

// Analyze runs one prompt against the document's S3 location.
func (a *BedrockAnalyzer) Analyze(ctx context.Context, prompt string, doc Document) (string, error) {
	out, err := a.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{
			Text: aws.String(prompt),
		},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeExternalSources,
			ExternalSourcesConfiguration: &types.ExternalSourcesRetrieveAndGenerateConfiguration{
				ModelArn: aws.String(a.modelARN),
				Sources: []types.ExternalSource{
					{
						SourceType: types.ExternalSourceTypeS3,
						S3Location: &types.S3ObjectDoc{
							Uri: aws.String(doc.S3URI()),
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("retrieve and generate for %s: %w", doc.S3URI(), err)
	}

	if out.Output == nil || out.Output.Text == nil {
		return "", fmt.Errorf("empty response for %s", doc.S3URI())
	}
	return aws.ToString(out.Output.Text), nil
}
