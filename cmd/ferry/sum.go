package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abeckett/ferry/internal/checksum"
)

var sumCmd = &cobra.Command{
	Use:   "sum <directory>",
	Short: "Write a checksum manifest for a directory tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runSum,
}

var checkCmd = &cobra.Command{
	Use:   "check <directory> <manifest>",
	Short: "Verify a directory tree against a checksum manifest",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

func init() {
	sumCmd.Flags().String("hash", "blake3", "checksum algorithm (crc32, md5, sha256 or blake3)")
	sumCmd.Flags().StringP("output", "o", "", "write manifest to FILE instead of stdout")

	checkCmd.Flags().String("hash", "", "checksum algorithm (default: read from the manifest header)")
}

func runSum(cmd *cobra.Command, args []string) error {
	hashStr, _ := cmd.Flags().GetString("hash")  //nolint:errcheck // flag name is hardcoded
	output, _ := cmd.Flags().GetString("output") //nolint:errcheck // flag name is hardcoded

	algo, err := checksum.ParseAlgorithm(hashStr)
	if err != nil {
		return err
	}

	entries, err := checksum.BuildManifest(args[0], algo)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create manifest file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return checksum.WriteManifest(w, algo, entries)
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, manifestPath := args[0], args[1]

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	hashStr, _ := cmd.Flags().GetString("hash") //nolint:errcheck // flag name is hardcoded
	var algo checksum.Algorithm
	switch {
	case hashStr != "":
		algo, err = checksum.ParseAlgorithm(hashStr)
		if err != nil {
			return err
		}
	default:
		var ok bool
		algo, ok = checksum.ManifestAlgorithm(bytes.NewReader(data))
		if !ok {
			algo = checksum.BLAKE3
		}
	}

	entries, err := checksum.ParseManifest(bytes.NewReader(data))
	if err != nil {
		return err
	}

	results, err := checksum.VerifyManifest(root, algo, entries)
	if err != nil {
		return err
	}

	mismatches := 0
	for _, r := range results {
		if !r.OK {
			mismatches++
			fmt.Fprintf(os.Stdout, "MISMATCH: %s (want %s, got %s)\n", r.Path, r.Want, r.Got)
		}
	}

	fmt.Fprintf(os.Stderr, "checked %d files with %s, %d mismatches\n",
		len(results), algo, mismatches)
	if mismatches > 0 {
		return &exitError{code: 1}
	}
	return nil
}
