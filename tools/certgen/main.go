// Package main writes a development CA and a server certificate signed by
// it. Point the server at server.crt/server.key and the client at ca.crt.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atinyakov/postboard/internal/certgen"
	"github.com/spf13/cobra"
)

func newCmd(out io.Writer) *cobra.Command {
	var (
		dir    string
		caName string
		reuse  bool
		hosts  []string
	)
	cmd := &cobra.Command{
		Use:          "certgen",
		Short:        "Generate a development CA and server certificate",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				ca  *certgen.Authority
				err error
			)
			caCert, caKey := filepath.Join(dir, "ca.crt"), filepath.Join(dir, "ca.key")
			if reuse {
				ca, err = certgen.LoadAuthority(caCert, caKey)
			} else {
				ca, err = certgen.NewAuthority(caName)
			}
			if err != nil {
				return err
			}
			if err := ca.WriteFiles(dir, hosts...); err != nil {
				return err
			}
			fmt.Fprintf(out, "Certificates for %v written to %s\n", hosts, dir)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringVar(&dir, "dir", "certs", "output directory")
	cmd.Flags().StringVar(&caName, "ca-name", "postboard dev CA", "CA common name")
	cmd.Flags().BoolVar(&reuse, "reuse-ca", false, "sign with the existing ca.crt/ca.key in --dir")
	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "server DNS names or IPs")
	return cmd
}

func main() {
	if err := newCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
