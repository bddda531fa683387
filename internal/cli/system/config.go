package system

import (
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
)

type ConfigCmd struct{}

func (c *ConfigCmd) Run(ctx *cli.Context) error {
	source := ctx.Config.Path
	if source == "" {
		source = "built-in defaults"
	}
	ctx.Printf("# source: %s\n", source)

	var b strings.Builder
	if err := ctx.Config.Encode(&b); err != nil {
		return err
	}
	ctx.Printf("%s", b.String())
	return nil
}
