package commands

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/fatih/color"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"github.com/santhoshkumar20044/HOI-Activity-New/internal/markup"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/models"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/repository"
	"github.com/santhoshkumar20044/HOI-Activity-New/internal/service"
)

const cliSession = "hoictl"

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat MESSAGE...",
		Short: "Ask the HOI assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: withEnv(func(ctx context.Context, e *env, args []string) error {
			chat := service.NewChatService(repository.NewMemoryChatLogRepository(0), e.client, markup.NewFormatter(), nil, e.logger)

			entries, err := chat.Send(ctx, cliSession, strings.Join(args, " "))
			if err != nil {
				return err
			}

			plain := bluemonday.StrictPolicy()
			for _, entry := range entries {
				if entry.Sender != string(models.SenderBot) {
					continue
				}
				text := strings.NewReplacer("<br>", "\n", "<li>", "\n  • ").Replace(string(entry.HTML))
				fmt.Println(color.CyanString("assistant:"), html.UnescapeString(plain.Sanitize(text)))
			}
			return nil
		}),
	}
}
