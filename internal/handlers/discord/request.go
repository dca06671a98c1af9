package discord

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/access"

	combatsvc "github.com/KirkDiggler/tabletop-ledger/internal/services/combat"
)

// request is the part of an interaction the commands need. The guild is the
// world and the channel is the campaign.
type request struct {
	Command    string
	Sub        string
	WorldID    string
	CampaignID string
	User       *access.User
	options    map[string]*discordgo.ApplicationCommandInteractionDataOption
}

func parseRequest(i *discordgo.InteractionCreate) *request {
	data := i.ApplicationCommandData()
	req := &request{
		Command:    data.Name,
		WorldID:    i.GuildID,
		CampaignID: i.ChannelID,
		options:    make(map[string]*discordgo.ApplicationCommandInteractionDataOption),
	}

	var user *discordgo.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	} else if i.User != nil {
		user = i.User
	}
	if user != nil {
		req.User = &access.User{ID: user.ID, Name: displayName(i.Member, user)}
	}

	options := data.Options
	if len(options) > 0 && options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		req.Sub = options[0].Name
		options = options[0].Options
	}
	for _, opt := range options {
		req.options[opt.Name] = opt
	}

	return req
}

func displayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func (r *request) actorName() string {
	if r.User == nil || r.User.Name == "" {
		return combatsvc.DefaultActor
	}
	return r.User.Name
}

func (r *request) has(name string) bool {
	_, ok := r.options[name]
	return ok
}

func (r *request) String(name string) string {
	opt, ok := r.options[name]
	if !ok {
		return ""
	}
	if s, ok := opt.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Int reads an integer option. Discord sends numbers as float64.
func (r *request) Int(name string) (int, bool) {
	opt, ok := r.options[name]
	if !ok {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

func (r *request) IntPtr(name string) *int {
	n, ok := r.Int(name)
	if !ok {
		return nil
	}
	return &n
}

func (r *request) Bool(name string) bool {
	opt, ok := r.options[name]
	if !ok {
		return false
	}
	b, _ := opt.Value.(bool)
	return b
}

// private reports whether the reply is ephemeral and the event MASTER only
func (r *request) private() bool {
	return r.Bool("private")
}

func (r *request) visibility() events.Visibility {
	if r.private() {
		return events.VisibilityMaster
	}
	return events.VisibilityPlayers
}

// parseInitiativeEntries reads "name:attribute:hp[:defense]" entries separated by commas
func parseInitiativeEntries(raw string) ([]*combatsvc.CombatantSpec, error) {
	var specs []*combatsvc.CombatantSpec
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, apperr.Validationf("entry %q must look like name:attribute:hp", entry)
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, apperr.Validationf("entry %q has no name", entry)
		}

		numbers := make([]int, 0, 3)
		for _, p := range parts[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, apperr.Validationf("entry %q has a bad number %q", entry, p)
			}
			numbers = append(numbers, n)
		}

		spec := &combatsvc.CombatantSpec{
			Kind:           string(combat.KindCharacter),
			Name:           name,
			AttributeScore: numbers[0],
			HPMax:          numbers[1],
		}
		if len(numbers) == 3 {
			spec.DefenseFinal = numbers[2]
		}
		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, apperr.Validation("at least one character is required")
	}
	return specs, nil
}

// findCombatant matches an id or a case-insensitive name
func findCombatant(c *combat.Combat, ref string) (*combat.Combatant, error) {
	ref = strings.TrimSpace(ref)
	if c == nil || ref == "" {
		return nil, apperr.NotFoundf("combatant %s not found", ref)
	}
	if cb := c.Find(ref); cb != nil {
		return cb, nil
	}
	for _, cb := range c.Combatants {
		if strings.EqualFold(cb.Name, ref) {
			return cb, nil
		}
	}
	return nil, apperr.NotFoundf("combatant %s not found", ref)
}
