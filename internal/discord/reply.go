package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
	apperrors "github.com/louisbranch/conhotel/internal/errors"
	"github.com/louisbranch/conhotel/internal/errors/i18n"
)

// reply sends an ephemeral text response to the interaction.
func reply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("respond to interaction: %v", err)
	}
}

// replyError translates a command failure into the user-facing catalog
// message for the invoker's locale.
func replyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	reply(s, i, errorMessage(string(i.Locale), err))
}

// errorMessage resolves the catalog message for an error. Internal failures
// are logged in full and surfaced as the generic message.
func errorMessage(locale string, err error) string {
	code := apperrors.GetCode(err)
	if code.Kind() == apperrors.KindInternal {
		log.Printf("command failed: %v", err)
	}
	catalog := i18n.GetCatalog(locale)
	return catalog.Format(string(code), apperrors.GetMetadata(err))
}
