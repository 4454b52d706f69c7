package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <session-id> <screenshot>",
	Short: "Analyze a chat screenshot and suggest replies",
	Long: `Analyze a chat screenshot and suggest replies.

Files that are not images are ignored. For conversations in a language
other than English, pass --english to see each reply translated.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

var (
	outfitFlag   bool
	locationFlag bool
	photoFlag    bool
	englishFlag  bool
)

func init() {
	analyzeCmd.Flags().BoolVar(&outfitFlag, "outfit", false, "She sent a photo of her outfit")
	analyzeCmd.Flags().BoolVar(&locationFlag, "asking-location", false, "She is asking where you are")
	analyzeCmd.Flags().BoolVar(&photoFlag, "asking-photo", false, "She is asking for a photo")
	analyzeCmd.Flags().BoolVar(&englishFlag, "english", false, "Show English translations of the replies")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read screenshot: %w", err)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	toggles := types.Toggles{
		OutfitSent:     outfitFlag,
		AskingLocation: locationFlag,
		AskingForPhoto: photoFlag,
	}
	result, err := a.svc.Analyze(cmd.Context(), args[0], image, toggles)
	if errors.Is(err, coach.ErrNotImage) {
		return nil
	}
	if err != nil {
		return errors.New(coach.UserMessage(err))
	}

	out := cmd.OutOrStdout()
	printAnalysis(out, result)

	if result.Session.NeedsTranslation() {
		if !englishFlag {
			fmt.Fprintln(out, "\nRun again with --english to see the replies in English.")
			return nil
		}
		fmt.Fprintln(out, "\nEnglish:")
		for _, r := range result.Result.Replies {
			fmt.Fprintf(out, "  %s\n    %s\n", r.Title, a.svc.TranslateReply(cmd.Context(), r.Reply))
		}
	}
	return nil
}

func printAnalysis(out io.Writer, a coach.Analysis) {
	fmt.Fprintf(out, "Contact: %s\n", a.Result.DetectedName)
	fmt.Fprintf(out, "Summary: %s\n\n", a.Result.Summary)
	for _, r := range a.Result.Replies {
		mark := ""
		switch r.Rating {
		case types.RatingPositive:
			mark = " (+)"
		case types.RatingNegative:
			mark = " (-)"
		}
		fmt.Fprintf(out, "%s%s\n  %s\n\n", r.Title, mark, r.Reply)
	}
	if a.Degraded {
		fmt.Fprintln(out, "The response could not be parsed; showing it as is.")
	}
}
