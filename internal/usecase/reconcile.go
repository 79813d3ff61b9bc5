package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/domain/game"
	"github.com/riskibarqy/nfl-insights/internal/domain/player"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/team"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

// Index is a batch-scoped snapshot of the stored teams, players and games
// used to resolve natural keys without a query per record. It is built once
// per run and updated with every entity the run upserts. It does not see
// writes from other processes, which is fine while a single worker runs the
// pipeline.
type Index struct {
	teamsByAbbreviation map[string]team.Team
	teamsByNickname     map[string]team.Team
	teamsByFullName     map[string]team.Team
	teamsBySlug         map[string]team.Team
	teamsByID           map[int64]team.Team

	playersByNameTeam map[playerKey]player.Player
	playerIDsByName   map[string]map[int64]struct{}
	playersByID       map[int64]player.Player

	gamesByEvent map[string]game.Game
}

type playerKey struct {
	name   string
	teamID int64
}

func NewIndex() *Index {
	return &Index{
		teamsByAbbreviation: make(map[string]team.Team),
		teamsByNickname:     make(map[string]team.Team),
		teamsByFullName:     make(map[string]team.Team),
		teamsBySlug:         make(map[string]team.Team),
		teamsByID:           make(map[int64]team.Team),
		playersByNameTeam:   make(map[playerKey]player.Player),
		playerIDsByName:     make(map[string]map[int64]struct{}),
		playersByID:         make(map[int64]player.Player),
		gamesByEvent:        make(map[string]game.Game),
	}
}

// BuildIndex loads every team, player and game from s.
func BuildIndex(ctx context.Context, s store.Store) (*Index, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BuildIndex")
	defer span.End()

	idx := NewIndex()

	teams, err := s.Teams().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	for _, item := range teams {
		idx.PutTeam(item)
	}

	players, err := s.Players().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	for _, item := range players {
		idx.PutPlayer(item)
	}

	games, err := s.Games().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	for _, item := range games {
		idx.PutGame(item)
	}

	return idx, nil
}

func normalizeKey(v string) string {
	return strings.ToLower(strings.Join(strings.Fields(v), " "))
}

func (ix *Index) PutTeam(item team.Team) {
	if prev, ok := ix.teamsByID[item.ID]; ok {
		delete(ix.teamsByNickname, normalizeKey(prev.Nickname))
		delete(ix.teamsByFullName, normalizeKey(prev.FullName))
		delete(ix.teamsBySlug, prev.Slug)
	}
	ix.teamsByID[item.ID] = item
	ix.teamsByAbbreviation[normalizeKey(item.Abbreviation)] = item
	if item.Nickname != "" {
		ix.teamsByNickname[normalizeKey(item.Nickname)] = item
	}
	if item.FullName != "" {
		ix.teamsByFullName[normalizeKey(item.FullName)] = item
	}
	if item.Slug != "" {
		ix.teamsBySlug[item.Slug] = item
	}
}

func (ix *Index) PutPlayer(item player.Player) {
	name := normalizeKey(item.FullName)
	ix.playersByNameTeam[playerKey{name: name, teamID: item.TeamID}] = item
	ix.playersByID[item.ID] = item
	ids, ok := ix.playerIDsByName[name]
	if !ok {
		ids = make(map[int64]struct{}, 1)
		ix.playerIDsByName[name] = ids
	}
	ids[item.ID] = struct{}{}
}

func (ix *Index) PutGame(item game.Game) {
	ix.gamesByEvent[strings.TrimSpace(item.Event)] = item
}

// TeamByAbbreviation resolves keys coming from JSON feeds.
func (ix *Index) TeamByAbbreviation(abbreviation string) (team.Team, bool) {
	item, ok := ix.teamsByAbbreviation[normalizeKey(abbreviation)]
	return item, ok
}

// TeamByLabel resolves team labels from scraped tables. Nickname is the
// primary key; full name and abbreviation are tried after it.
func (ix *Index) TeamByLabel(label string) (team.Team, bool) {
	key := normalizeKey(label)
	if key == "" {
		return team.Team{}, false
	}
	if item, ok := ix.teamsByNickname[key]; ok {
		return item, true
	}
	if item, ok := ix.teamsByFullName[key]; ok {
		return item, true
	}
	item, ok := ix.teamsByAbbreviation[key]
	return item, ok
}

func (ix *Index) TeamBySlug(slug string) (team.Team, bool) {
	item, ok := ix.teamsBySlug[slug]
	return item, ok
}

// Player resolves by full name within a team.
func (ix *Index) Player(fullName string, teamID int64) (player.Player, bool) {
	item, ok := ix.playersByNameTeam[playerKey{name: normalizeKey(fullName), teamID: teamID}]
	return item, ok
}

// PlayerByName resolves a full name only when exactly one stored player
// carries it.
func (ix *Index) PlayerByName(fullName string) (player.Player, bool) {
	ids := ix.playerIDsByName[normalizeKey(fullName)]
	if len(ids) != 1 {
		return player.Player{}, false
	}
	for id := range ids {
		item, ok := ix.playersByID[id]
		return item, ok
	}
	return player.Player{}, false
}

func (ix *Index) GameByEvent(event string) (game.Game, bool) {
	item, ok := ix.gamesByEvent[strings.TrimSpace(event)]
	return item, ok
}

// skipRecord logs a record that could not be reconciled and counts it.
func skipRecord(ctx context.Context, logger *logging.Logger, result *BatchResult, reason error, args ...any) {
	result.Skipped++
	fields := append([]any{"source", result.Source, "reason", reason}, args...)
	logger.WarnContext(ctx, "record skipped", fields...)
}
