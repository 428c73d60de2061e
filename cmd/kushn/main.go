// Kushn writes a self-describing hash manifest of a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kushn "github.com/mattkeenan/kushn/pkg"
)

// Version information (set via ldflags)
var Version = "dev"

var flags struct {
	name    string
	root    string
	lenient bool
	verbose int
	debug   string
}

var rootCmd = &cobra.Command{
	Use:   "kushn",
	Short: "Generate a self-describing hash manifest for a directory tree",
	Long: `Kushn hashes every regular file under a directory and writes a JSON
manifest of {path, hash} entries. Ignore rules are read from a .kushnignore
file in the processed root, one glob per line. The manifest's last entry
records the digest of the manifest itself as first written.`,
	Args:          cobra.NoArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kushn %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringVarP(&flags.name, "name", "n", "",
		"output file name (default from .kushnrc, else "+kushn.DefaultManifestName+")")
	rootCmd.Flags().StringVarP(&flags.root, "root", "C", ".",
		"directory to process")
	rootCmd.Flags().BoolVar(&flags.lenient, "lenient", false,
		"report unreadable directory entries and continue instead of aborting")
	rootCmd.PersistentFlags().IntVarP(&flags.verbose, "verbose", "v", 0,
		"verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)")
	rootCmd.PersistentFlags().StringVar(&flags.debug, "debug", "",
		"comma-separated debug flags")
}

func run(cmd *cobra.Command, _ []string) error {
	kushn.SetVerboseLevel(flags.verbose)
	kushn.SetDebugFlags(flags.debug)

	cfg, err := kushn.LoadConfig(flags.root)
	if err != nil {
		return err
	}

	name := cfg.OutputName
	if flags.name != "" {
		name = flags.name
	}
	policy := cfg.Policy
	if flags.lenient {
		policy = kushn.PolicyLenient
	}
	algorithm, err := kushn.GetAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}

	rules, err := kushn.ReadIgnoreFile(flags.root)
	if err != nil {
		return err
	}

	opts := kushn.WalkOptions{Policy: policy, Algorithm: algorithm}
	if err := kushn.GenerateManifest(flags.root, name, rules, opts); err != nil {
		return err
	}

	fmt.Printf("File hashes generated and saved to %s.\n", name)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kushn: %v\n", err)
		os.Exit(1)
	}
}
