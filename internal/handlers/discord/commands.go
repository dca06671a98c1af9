package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Command names
const (
	CommandCombat    = "combat"
	CommandRoll      = "roll"
	CommandHP        = "hp"
	CommandCondition = "condition"
	CommandNote      = "note"
	CommandNarrate   = "narrate"
	CommandSummary   = "summary"
)

func privateOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "private",
		Description: "Only the game master sees this",
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func subCommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// Commands returns the slash commands the bot registers
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandCombat,
			Description: "Run the combat of this channel",
			Options: []*discordgo.ApplicationCommandOption{
				subCommand("start", "Start or resume combat",
					stringOption("ruleset", "Ruleset for a new combat (default tormenta20)", false),
					privateOption(),
				),
				subCommand("end", "End combat, keeping its history", privateOption()),
				subCommand("next", "Advance to the next turn", privateOption()),
				subCommand("prev", "Go back one turn", privateOption()),
				subCommand("status", "Show the initiative order"),
				subCommand("initiative", "Roll initiative for the characters",
					stringOption("characters", "name:attribute:hp entries separated by commas", true),
					privateOption(),
				),
				subCommand("add", "Add a combatant",
					stringOption("name", "Combatant name", true),
					intOption("hp", "Maximum hit points", true),
					intOption("mp", "Maximum mana points", false),
					intOption("defense", "Defense (default 10)", false),
					intOption("attack_bonus", "Attack bonus", false),
					stringOption("damage", "Damage formula such as 1d8+2 (default 1d6)", false),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "Combatant kind (default NPC)",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "NPC", Value: "NPC"},
							{Name: "Extra", Value: "EXTRA"},
							{Name: "Character", Value: "CHARACTER"},
						},
					},
					privateOption(),
				),
				subCommand("monster", "Add a monster from the 5e reference",
					stringOption("key", "Monster key such as goblin", true),
					stringOption("name", "Display name", false),
					privateOption(),
				),
				subCommand("attack", "Resolve an attack between combatants",
					stringOption("attacker", "Attacker name", true),
					stringOption("target", "Target name", true),
					stringOption("attribute", "Attack attribute (default forca)", false),
					privateOption(),
				),
			},
		},
		{
			Name:        CommandRoll,
			Description: "Roll dice such as 2d6+3",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("formula", "Dice formula", true),
				privateOption(),
			},
		},
		{
			Name:        CommandHP,
			Description: "Change a combatant's hit or mana points",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("target", "Combatant name", true),
				intOption("hp", "Hit point change, negative for damage", false),
				intOption("mp", "Mana point change", false),
				stringOption("note", "Why it changed", false),
				privateOption(),
			},
		},
		{
			Name:        CommandCondition,
			Description: "Apply a condition to a combatant",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("target", "Combatant name", true),
				stringOption("condition", "Condition key such as caido", true),
				intOption("expires", "Round the condition expires", false),
				privateOption(),
			},
		},
		{
			Name:        CommandNote,
			Description: "Record a note in the world ledger",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("text", "Note text", true),
				privateOption(),
			},
		},
		{
			Name:        CommandNarrate,
			Description: "Record events proposed for a narration",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("candidates", "JSON list of {type, payload, description}", true),
				privateOption(),
			},
		},
		{
			Name:        CommandSummary,
			Description: "Summarize recent events of this world",
			Options: []*discordgo.ApplicationCommandOption{
				intOption("limit", "How many recent events to read", false),
				privateOption(),
			},
		},
	}
}
