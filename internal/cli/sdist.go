package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

var (
	sdistSource string
	sdistDist   string
)

var sdistCmd = &cobra.Command{
	Use:   "sdist",
	Short: "Create a .tar.xz source archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := resolvePackage(cmd)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(sdistDist, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", sdistDist, err)
		}

		target := filepath.Join(sdistDist, pyext.SourceArchiveName(pkg))
		f, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("creating archive: %w", err)
		}

		if err := pyext.WriteSourceArchive(f, pkg, sdistSource); err != nil {
			f.Close()
			os.Remove(target)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
		return nil
	},
}

func init() {
	sdistCmd.Flags().StringVar(&sdistSource, "source", ".", "directory with the interface file and modules")
	sdistCmd.Flags().StringVar(&sdistDist, "dist", "dist", "output directory")
}
