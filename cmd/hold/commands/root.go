package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DrSkyle/hold/pkg/blob"
	fsprovider "github.com/DrSkyle/hold/pkg/provider/fs"
	"github.com/DrSkyle/hold/pkg/provider/memory"
	s3provider "github.com/DrSkyle/hold/pkg/provider/s3"
	"github.com/DrSkyle/hold/pkg/telemetry"
	"github.com/DrSkyle/hold/pkg/version"
)

// Settings holds the CLI configuration resolved from flags, environment and
// the config file.
type Settings struct {
	Backend         string
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Root            string
	OtelEndpoint    string
	Mock            bool
	PathStyle       bool
}

var (
	cfgFile  string
	config   Settings
	shutdown func(context.Context) error

	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)

var rootCmd = &cobra.Command{
	Use:   "hold",
	Short: "Provider-agnostic blob storage",
	Long: `hold - store, fetch, check and delete blobs against any configured backend

Backends: s3 (default), fs (local directory), memory (volatile, for testing).`,
	Version:       version.Current,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		shutdown, err = telemetry.Init(cmd.Context(), version.AppName, version.Current, config.OtelEndpoint)
		if err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Telemetry init failed: %v", err)))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdown != nil {
			_ = shutdown(cmd.Context())
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.hold.yaml)")
	rootCmd.PersistentFlags().StringVar(&config.Backend, "backend", "s3", "Storage backend: s3, fs or memory")
	rootCmd.PersistentFlags().StringVar(&config.Bucket, "bucket", "", "Bucket or namespace identifier")
	rootCmd.PersistentFlags().StringVar(&config.Endpoint, "endpoint", "", "S3 endpoint override (MinIO, LocalStack)")
	rootCmd.PersistentFlags().StringVar(&config.Region, "region", "", "S3 region (defaults to ambient AWS config)")
	rootCmd.PersistentFlags().StringVar(&config.AccessKeyID, "access-key", "", "Explicit access key id")
	rootCmd.PersistentFlags().StringVar(&config.SecretAccessKey, "secret-key", "", "Explicit secret access key")
	rootCmd.PersistentFlags().StringVar(&config.Root, "root", ".hold", "Root directory for the fs backend")
	rootCmd.PersistentFlags().StringVar(&config.OtelEndpoint, "otel-endpoint", "", "OTLP trace endpoint")
	rootCmd.PersistentFlags().BoolVar(&config.PathStyle, "path-style", false, "Use path-style S3 addressing")

	// Hidden Flags
	rootCmd.PersistentFlags().BoolVar(&config.Mock, "mock", false, "Use the in-memory backend")
	rootCmd.PersistentFlags().MarkHidden("mock")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(PutCmd)
	rootCmd.AddCommand(CatCmd)
	rootCmd.AddCommand(StatCmd)
	rootCmd.AddCommand(RmCmd)
	rootCmd.AddCommand(VerifyCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".hold.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("HOLD")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	// Flags win; unset flags pick up config file / env values.
	if config.Bucket == "" {
		config.Bucket = viper.GetString("bucket")
	}
	if config.Endpoint == "" {
		config.Endpoint = viper.GetString("endpoint")
	}
	if config.Region == "" {
		config.Region = viper.GetString("region")
	}
	if config.AccessKeyID == "" {
		config.AccessKeyID = viper.GetString("access_key")
	}
	if config.SecretAccessKey == "" {
		config.SecretAccessKey = viper.GetString("secret_key")
	}
	if config.OtelEndpoint == "" {
		config.OtelEndpoint = viper.GetString("otel_endpoint")
	}
}

func renderHelp(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Println(titleStyle.Render(fmt.Sprintf("HOLD %s", version.Current)))
	fmt.Println("Provider-agnostic blob storage.")

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	fmt.Println(titleStyle.Render("COMMANDS"))
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
		}
	}
	fmt.Println("")

	fmt.Println(titleStyle.Render("EXAMPLES"))
	fmt.Println("  hold put a/b.txt report.txt --bucket my-bucket")
	fmt.Println("  hold cat a/b.txt --backend fs --root /var/hold")
	fmt.Println("")

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		fmt.Println(flagStyle.Render(fmt.Sprintf("  --%-14s %s", f.Name, f.Usage)))
	})
}

// newProvider resolves the configured backend into a blob.Provider.
func newProvider(ctx context.Context) (blob.Provider, error) {
	backend := config.Backend
	if config.Mock {
		backend = "memory"
	}

	switch backend {
	case "memory":
		return memory.New(), nil
	case "fs":
		return fsprovider.New(afero.NewOsFs(), config.Root)
	case "s3":
		if config.Bucket == "" {
			return nil, fmt.Errorf("the s3 backend requires --bucket")
		}
		return s3provider.New(ctx, s3provider.Config{
			Bucket:          config.Bucket,
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			AccessKeyID:     config.AccessKeyID,
			SecretAccessKey: config.SecretAccessKey,
			UsePathStyle:    config.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
