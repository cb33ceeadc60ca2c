package main

import (
	"os"

	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/fabric8io/kubehelper/pkg/kubehelper-cli/cmd"
)

func main() {
	flags := pflag.NewFlagSet("kubehelper", pflag.ExitOnError)
	pflag.CommandLine = flags

	root := cmd.NewKubeHelper(genericiooptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
