package bot

import "github.com/bwmarrin/discordgo"

// Commands returns the slash command definitions registered on startup.
func Commands() []*discordgo.ApplicationCommand {
	minNumber := float64(1)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "list_texts",
			Description: "List available texts",
		},
		{
			Name:        "quote",
			Description: "Quote a numbered passage",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Title of the text",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "number",
					Description: "Passage number (starting at 1)",
					Required:    true,
					MinValue:    &minNumber,
				},
			},
		},
		{
			Name:        "random_passage",
			Description: "Get a random passage",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Optional: title of the text",
					Required:    false,
				},
			},
		},
		{
			Name:        "search",
			Description: "Search bundled texts",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Search term",
					Required:    true,
				},
			},
		},
	}
}
