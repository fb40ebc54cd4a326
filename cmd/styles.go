package cmd

import (
	"fmt"

	"github.com/shouni/go-comic-kit/internal/wizard"

	"github.com/spf13/cobra"
)

// stylesCmd は、選べる画風のカタログを一覧表示するのだ。APIキー無しで動くのだよ。
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "選べる画風のカタログを一覧表示するのだ！",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), wizard.StyleTable())
		return nil
	},
}
