package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/adaptorvec"
	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/ecdsaadaptor"
)

func checkCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <vectors.json|vectors.csv>",
		Short: "Check a file of adaptor signature vectors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers := a.cfg.NumWorkers()
			if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
				workers = n
			}

			client := adaptorvec.NewClient().
				WithParser(adaptorvec.ParserForFile(args[0])).
				WithWorkers(workers).
				WithLogger(a.logger)

			report, err := client.CheckFile(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "check failed")
			}

			out := cmd.OutOrStdout()
			for _, res := range report.Results {
				status := "ok"
				if !res.Passed {
					status = "FAIL"
				}
				name := res.Name
				if name == "" {
					name = fmt.Sprintf("#%d", res.Index)
				}
				detail := ""
				if res.Err != nil {
					detail = ": " + res.Err.Error()
				}
				fmt.Fprintf(out, "%-4s %s (valid=%v)%s\n", status, name, res.Expected, detail)
			}
			fmt.Fprintf(out, "%d passed, %d failed\n", report.Passed, report.Failed)

			if !report.OK() {
				return errors.Errorf("%d vectors did not behave as expected", report.Failed)
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", 0, "number of parallel workers (default from config)")
	return cmd
}

func generateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random valid vectors as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count <= 0 {
				return errors.Errorf("--count must be positive, got %d", count)
			}

			var opts []ecdsaadaptor.EncryptOption
			if !a.cfg.Signer.AuxRandomness {
				opts = append(opts, ecdsaadaptor.WithDeterministicNonce())
			}
			vectors, err := adaptorvec.Generate(count, opts...)
			if err != nil {
				return errors.Wrap(err, "failed to generate vectors")
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				return adaptorvec.WriteJSON(cmd.OutOrStdout(), vectors)
			}

			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(err, "failed to create output file")
			}
			if err := adaptorvec.WriteJSON(f, vectors); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}
			a.logger.Info("wrote vectors", zap.String("path", path), zap.Int("count", len(vectors)))
			return nil
		},
	}
	cmd.Flags().Int("count", 10, "number of vectors")
	cmd.Flags().String("out", "", "output file (default stdout)")
	return cmd
}
