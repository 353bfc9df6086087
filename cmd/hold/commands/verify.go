package commands

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the ambient AWS credential chain",
	Long:  `Resolves credentials the same way the s3 backend does and calls STS GetCallerIdentity to confirm they are valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []func(*awsconfig.LoadOptions) error{}
		if config.Region != "" {
			opts = append(opts, awsconfig.WithRegion(config.Region))
		}
		if config.Endpoint != "" {
			opts = append(opts, awsconfig.WithBaseEndpoint(config.Endpoint))
		}

		cfg, err := awsconfig.LoadDefaultConfig(cmd.Context(), opts...)
		if err != nil {
			return fmt.Errorf("unable to load SDK config: %w", err)
		}

		out, err := sts.NewFromConfig(cfg).GetCallerIdentity(cmd.Context(), &sts.GetCallerIdentityInput{})
		if err != nil {
			return fmt.Errorf("failed to get caller identity: %w", err)
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("Account: %s", aws.ToString(out.Account))))
		fmt.Println(okStyle.Render(fmt.Sprintf("Identity: %s", aws.ToString(out.Arn))))
		return nil
	},
}
