package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List conversations, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new conversation",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

var rateCmd = &cobra.Command{
	Use:   "rate <session-id> <positive|negative> <reply text>",
	Short: "Rate a suggested reply",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runRate,
}

var contextCmd = &cobra.Command{
	Use:   "context <session-id> <text>",
	Short: "Replace the personal context of a conversation",
	Long: `Replace the personal context of a conversation.
Pass an empty string to clear it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runContext,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var (
	bossFlag     bool
	goalFlag     string
	languageFlag string
	yesFlag      bool
)

func init() {
	newCmd.Flags().BoolVar(&bossFlag, "boss", false, "Coach as the former-boss persona")
	newCmd.Flags().StringVar(&goalFlag, "goal", string(types.GoalRapport), "Conversation goal: rapport or getNumber")
	newCmd.Flags().StringVar(&languageFlag, "language", types.DefaultLanguage, "Language code the contact writes in")

	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
}

func runSessions(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.svc.ListSessions(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No conversations yet. Run 'coach new' to start one.")
		return nil
	}
	for _, s := range sessions {
		mode := ""
		if s.IsBossMode {
			mode = " [boss]"
		}
		fmt.Fprintf(out, "%s  %-20s goal=%s lang=%s analyses=%d%s\n",
			s.ID, s.ContactName, s.Goal, s.Language, len(s.History), mode)
	}
	return nil
}

func runNew(cmd *cobra.Command, args []string) error {
	goal := types.Goal(goalFlag)
	if goal != types.GoalRapport && goal != types.GoalGetNumber {
		return fmt.Errorf("unknown goal %q (want rapport or getNumber)", goalFlag)
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.svc.NewSession(cmd.Context(), coach.NewSessionParams{
		IsBossMode: bossFlag,
		Goal:       goal,
		Language:   languageFlag,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", session.ID, session.ContactName)
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	rating := types.Rating(args[1])
	if rating != types.RatingPositive && rating != types.RatingNegative {
		return fmt.Errorf("rating must be positive or negative, got %q", args[1])
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	reply := strings.Join(args[2:], " ")
	if _, err := a.svc.RateReply(cmd.Context(), args[0], reply, rating); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rated %s\n", rating)
	return nil
}

func runContext(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := a.svc.UpdateContext(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated context for %s\n", session.ContactName)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	confirmed := yesFlag
	if !confirmed {
		confirmed = confirm(cmd.InOrStdin(), cmd.OutOrStdout(), coach.MessageDeleteConfirm)
	}
	if !confirmed {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.svc.DeleteSession(cmd.Context(), args[0], true); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
