package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate text into a target language",
	Long: `Translate text into a target language (Luganda unless --to is given).
Any language from 'coach languages' is accepted, English included.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported translation targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, l := range types.Languages {
			fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s\n", l.Code, l.Name)
		}
		return nil
	},
}

var toFlag string

func init() {
	translateCmd.Flags().StringVar(&toFlag, "to", types.DefaultTargetLanguage().Name, "Target language name or code")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	lang, ok := types.LookupLanguage(toFlag)
	if !ok {
		return fmt.Errorf("unsupported language %q, run 'coach languages' for the list", toFlag)
	}
	out, err := a.svc.Translate(cmd.Context(), text, lang.Name)
	if err != nil {
		return errors.New(coach.TranslateFailedMessage(lang.Name))
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
