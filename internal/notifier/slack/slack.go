package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/mauv0809/courtside/internal/challenge"
	"github.com/mauv0809/courtside/internal/invitation"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/ranking"
	"github.com/mauv0809/courtside/internal/rating"
	"github.com/mauv0809/courtside/internal/tennis"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

const timeLayout = "Monday 02 Jan, 15:04"

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(match *tennis.MatchResult, changes []rating.Change, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(s.formatResultNotification(match, changes), dryRun)
	return ts, err
}

func (s *Notifier) SendInvitationMatched(inv *invitation.Invitation, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(s.formatInvitationMatched(inv), dryRun)
	return ts, err
}

func (s *Notifier) SendChallengeCreated(c *challenge.Challenge, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(s.formatChallengeCreated(c), dryRun)
	return ts, err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(entries []ranking.Entry) (any, error) {
	return s.formatLeaderboard(entries), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(entry *ranking.Entry, playerRating *rating.PlayerRating) (any, error) {
	if entry == nil {
		return nil, fmt.Errorf("%w: entry is nil", tennis.ErrInvalidArgument)
	}
	return s.formatPlayerStats(entry, playerRating), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func sideNames(side tennis.Side) string {
	names := make([]string, 0, len(side.Players))
	for _, p := range side.Players {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		names = append(names, name)
	}
	return strings.Join(names, " & ")
}

// formatResultNotification creates the Slack message for a recorded match using Block Kit.
func (s *Notifier) formatResultNotification(match *tennis.MatchResult, changes []rating.Change) slack.Message {
	blocks := make([]slack.Block, 0)

	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🎾 Match finished! 🎾", true, false)))

	details := fmt.Sprintf("%s match, %s", capitalize(string(match.MatchType)), match.PlayedAt.Local().Format(timeLayout))
	blocks = append(blocks, plainSection(details))

	winner := sideNames(match.Sides[match.WinningSide])
	loser := sideNames(match.Sides[1-match.WinningSide])
	resultText := fmt.Sprintf("Result: %s beat %s 🏆", winner, loser)
	if len(match.Sets) > 0 {
		var sets []string
		for _, set := range match.Sets {
			sets = append(sets, fmt.Sprintf("%d-%d", set.Side1, set.Side2))
		}
		resultText += "\n" + strings.Join(sets, ", ")
	}
	blocks = append(blocks, plainSection(resultText))

	if len(changes) > 0 {
		names := make(map[string]string)
		for _, p := range match.Participants() {
			names[p.ID] = p.Name
		}
		lines := make([]string, 0, len(changes))
		for _, c := range changes {
			name := names[c.PlayerID]
			if name == "" {
				name = c.PlayerID
			}
			lines = append(lines, fmt.Sprintf("• %s: %d → %d (%+d)", name, c.Before, c.After, c.Delta))
		}
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Rating changes:\n"+strings.Join(lines, "\n"), true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatInvitationMatched(inv *invitation.Invitation) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🎾 Match on! 🎾", true, false)))

	players := []string{fmt.Sprintf("• %s", displayName(inv.CreatorName, inv.CreatorID))}
	for _, r := range inv.Responses {
		players = append(players, fmt.Sprintf("• %s", displayName(r.UserName, r.UserID)))
	}
	blocks = append(blocks, plainSection(fmt.Sprintf("The %s invitation is full.\nPlayers:\n%s", inv.MatchType, strings.Join(players, "\n"))))

	if inv.Message != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", inv.Message, true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatChallengeCreated(c *challenge.Challenge) slack.Message {
	text := fmt.Sprintf("<@%s> has challenged <@%s> to a %s match!", c.ChallengerID, c.ChallengedID, c.MatchType)
	if c.ProposedDate != nil {
		text += fmt.Sprintf("\nProposed: %s", c.ProposedDate.Local().Format(timeLayout))
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "⚔️ New challenge ⚔️", true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func (s *Notifier) formatLeaderboard(entries []ranking.Entry) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)))

	if len(entries) == 0 {
		blocks = append(blocks, plainSection("No results available yet. Go play some matches!"))
		return slack.NewBlockMessage(blocks...)
	}

	for _, e := range entries {
		playerText := fmt.Sprintf("%d. %s %s\n> Points: %d | Win %%: %d%% (%d/%d)",
			e.Ranking,
			medal(e.Ranking),
			e.PlayerName,
			e.Points,
			e.WinPercentage,
			e.Wins,
			e.Played(),
		)
		if e.IsProvisional {
			playerText += " | provisional"
		}
		blocks = append(blocks, plainSection(playerText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(entry *ranking.Entry, playerRating *rating.PlayerRating) slack.Message {
	blocks := make([]slack.Block, 0)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 Stats for %s 🏆", entry.PlayerName), true, false)))

	text := fmt.Sprintf("> *Rank*: %d\n> *Match Win %%*: %d%% (%d/%d)\n> *Points*: %d",
		entry.Ranking,
		entry.WinPercentage,
		entry.Wins,
		entry.Played(),
		entry.Points,
	)
	if playerRating != nil {
		text += fmt.Sprintf("\n> *Rating*: %d (%s)", playerRating.Rating, playerRating.Tier().Name)
		if playerRating.IsProvisional() {
			text += " _provisional_"
		}
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
