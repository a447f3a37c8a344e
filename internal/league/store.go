package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/stats"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

const aggregateColumns = `p.name, p.tag, s.matches_played, s.wins, s.total_kills, s.total_deaths,
	s.total_assists, s.total_acs, s.total_first_bloods, s.total_headshot_kills`

// The increments never read the prior value, so concurrent writers cannot lose updates.
const incrementPlayerStatsSQL = `
	INSERT INTO player_stats (player_id, matches_played, wins, total_kills, total_deaths, total_assists, total_acs, total_first_bloods, total_headshot_kills)
	VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(player_id) DO UPDATE SET
		matches_played = matches_played + excluded.matches_played,
		wins = wins + excluded.wins,
		total_kills = total_kills + excluded.total_kills,
		total_deaths = total_deaths + excluded.total_deaths,
		total_assists = total_assists + excluded.total_assists,
		total_acs = total_acs + excluded.total_acs,
		total_first_bloods = total_first_bloods + excluded.total_first_bloods,
		total_headshot_kills = total_headshot_kills + excluded.total_headshot_kills;`

const incrementEventStatsSQL = `
	INSERT INTO event_player_stats (event_id, player_id, matches_played, wins, total_kills, total_deaths, total_assists, total_acs, total_first_bloods, total_headshot_kills)
	VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(event_id, player_id) DO UPDATE SET
		matches_played = matches_played + excluded.matches_played,
		wins = wins + excluded.wins,
		total_kills = total_kills + excluded.total_kills,
		total_deaths = total_deaths + excluded.total_deaths,
		total_assists = total_assists + excluded.total_assists,
		total_acs = total_acs + excluded.total_acs,
		total_first_bloods = total_first_bloods + excluded.total_first_bloods,
		total_headshot_kills = total_headshot_kills + excluded.total_headshot_kills;`

// RegisterPlayer creates the player and its all-zero aggregate in one transaction.
// Name and tag are matched case-insensitively.
func (s *store) RegisterPlayer(ctx context.Context, player Player) (Player, error) {
	player.Name = strings.TrimSpace(player.Name)
	player.Tag = strings.TrimSpace(player.Tag)
	if player.Name == "" || player.Tag == "" {
		return Player{}, ErrInvalidPlayer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Player{}, err
	}
	defer tx.Rollback()

	if _, err := playerIDTx(ctx, tx, player.Name, player.Tag); err == nil {
		return Player{}, fmt.Errorf("%w: %s#%s", ErrPlayerExists, player.Name, player.Tag)
	} else if !errors.Is(err, stats.ErrPlayerNotFound) {
		return Player{}, err
	}

	player.ID = uuid.NewString()
	player.CreatedAt = time.Now().Unix()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO players (id, name, tag, discord_id, created_at) VALUES (?, ?, ?, ?, ?)",
		player.ID, player.Name, player.Tag, nullable(player.DiscordID), player.CreatedAt)
	if err != nil {
		return Player{}, fmt.Errorf("failed to insert player: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO player_stats (player_id) VALUES (?)", player.ID); err != nil {
		return Player{}, fmt.Errorf("failed to create aggregate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Player{}, err
	}
	log.Info("Registered player", "player", player.Name+"#"+player.Tag, "id", player.ID)
	return player, nil
}

// GetPlayer returns stats.ErrPlayerNotFound for an unknown identity.
func (s *store) GetPlayer(ctx context.Context, name, tag string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, tag, discord_id, created_at FROM players WHERE name = ? AND tag = ?",
		strings.TrimSpace(name), strings.TrimSpace(tag))
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, stats.ErrPlayerNotFound
	}
	return p, err
}

func (s *store) ListPlayers(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, tag, discord_id, created_at FROM players ORDER BY name, tag")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// RemovePlayer deletes the player. Their aggregate, event aggregates and match
// history rows go with them through ON DELETE CASCADE.
func (s *store) RemovePlayer(ctx context.Context, name, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE name = ? AND tag = ?",
		strings.TrimSpace(name), strings.TrimSpace(tag))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return stats.ErrPlayerNotFound
	}
	log.Info("Removed player", "player", name+"#"+tag)
	return nil
}

func (s *store) GetAggregate(ctx context.Context, name, tag string) (stats.PlayerAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT `+aggregateColumns+`
		FROM players p JOIN player_stats s ON s.player_id = p.id
		WHERE p.name = ? AND p.tag = ?`, strings.TrimSpace(name), strings.TrimSpace(tag))
	agg, err := scanAggregate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.PlayerAggregate{}, stats.ErrPlayerNotFound
	}
	return agg, err
}

// ApplyDeltas applies a whole match in one transaction. The applied_matches insert
// doubles as the idempotency check, and the player lookups happen before any
// increment so a missing participant leaves every aggregate untouched.
func (s *store) ApplyDeltas(ctx context.Context, outcome stats.Outcome, deltas []stats.Delta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO applied_matches (match_id, event_id, winner_team, applied_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(match_id) DO NOTHING`,
		outcome.MatchID, nullable(outcome.EventID), string(outcome.Winner), outcome.At.Unix())
	if err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return &stats.DuplicateMatchError{MatchID: outcome.MatchID}
	}

	// A scheduled match decides which event the result counts for.
	eventID, scheduled, err := scheduledEventTx(ctx, tx, outcome.MatchID)
	if err != nil {
		return err
	}
	if scheduled && outcome.EventID != eventID {
		if outcome.EventID != "" {
			return &stats.ValidationError{Problems: []stats.Problem{{
				Field:  "eventId",
				Reason: fmt.Sprintf("match %s belongs to event %q", outcome.MatchID, eventID),
			}}}
		}
		outcome.EventID = eventID
		if _, err := tx.ExecContext(ctx, "UPDATE applied_matches SET event_id = ? WHERE match_id = ?",
			nullable(eventID), outcome.MatchID); err != nil {
			return fmt.Errorf("failed to record match event: %w", err)
		}
	}

	if outcome.EventID != "" {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id = ?", outcome.EventID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrEventNotFound, outcome.EventID)
		}
		if err != nil {
			return err
		}
	}

	playerIDs := make([]string, len(deltas))
	var missing []stats.Identity
	for i, d := range deltas {
		id, err := playerIDTx(ctx, tx, d.Name, d.Tag)
		if errors.Is(err, stats.ErrPlayerNotFound) {
			missing = append(missing, d.Identity())
			continue
		}
		if err != nil {
			return err
		}
		playerIDs[i] = id
	}
	if len(missing) > 0 {
		return &stats.NotFoundError{Players: missing}
	}

	for i, d := range deltas {
		playerID := playerIDs[i]
		if err := incrementPlayerStatsTx(ctx, tx, playerID, d); err != nil {
			return err
		}
		if outcome.EventID != "" {
			_, err := tx.ExecContext(ctx, incrementEventStatsSQL, outcome.EventID, playerID,
				d.WinIncrement(), d.Kills, d.Deaths, d.Assists, d.ACS, d.FirstBloods, d.HeadshotKills)
			if err != nil {
				return fmt.Errorf("failed to update event stats for %s: %w", d.Identity(), err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO match_player_stats (match_id, position, player_id, team, won, kills, deaths, assists, acs, first_bloods, hs_percent, headshot_kills)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			outcome.MatchID, d.Position, playerID, string(d.Team), d.WinIncrement(),
			d.Kills, d.Deaths, d.Assists, d.ACS, d.FirstBloods, d.HSPercent, d.HeadshotKills)
		if err != nil {
			return fmt.Errorf("failed to record match line for %s: %w", d.Identity(), err)
		}
	}

	// A match created through the lifecycle endpoints is closed in the same transaction.
	_, err = tx.ExecContext(ctx,
		"UPDATE matches SET status = ?, winner_team = ?, completed_at = ? WHERE id = ?",
		MatchStatusCompleted, string(outcome.Winner), outcome.At.Unix(), outcome.MatchID)
	if err != nil {
		return fmt.Errorf("failed to complete match: %w", err)
	}

	return tx.Commit()
}

// scheduledEventTx reports whether matchID was created through the lifecycle
// endpoints and, if so, the event it was created under.
func scheduledEventTx(ctx context.Context, tx *sql.Tx, matchID string) (string, bool, error) {
	var eventID string
	err := tx.QueryRowContext(ctx, "SELECT COALESCE(event_id, '') FROM matches WHERE id = ?", matchID).Scan(&eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return eventID, true, nil
}

func (s *store) ListAggregates(ctx context.Context) ([]stats.PlayerAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryAggregates(ctx, `
		SELECT `+aggregateColumns+`
		FROM players p JOIN player_stats s ON s.player_id = p.id`)
}

// ListEventAggregates returns aggregates restricted to one event's matches.
// Players without a match in the event are not listed.
func (s *store) ListEventAggregates(ctx context.Context, eventID string) ([]stats.PlayerAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id = ?", eventID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.queryAggregates(ctx, `
		SELECT `+aggregateColumns+`
		FROM players p JOIN event_player_stats s ON s.player_id = p.id
		WHERE s.event_id = ?`, eventID)
}

func (s *store) queryAggregates(ctx context.Context, query string, args ...any) ([]stats.PlayerAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggs := []stats.PlayerAggregate{}
	for rows.Next() {
		agg, err := scanAggregate(rows)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, rows.Err()
}

func incrementPlayerStatsTx(ctx context.Context, tx *sql.Tx, playerID string, d stats.Delta) error {
	_, err := tx.ExecContext(ctx, incrementPlayerStatsSQL, playerID,
		d.WinIncrement(), d.Kills, d.Deaths, d.Assists, d.ACS, d.FirstBloods, d.HeadshotKills)
	if err != nil {
		return fmt.Errorf("failed to update stats for %s: %w", d.Identity(), err)
	}
	return nil
}

func playerIDTx(ctx context.Context, tx *sql.Tx, name, tag string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, "SELECT id FROM players WHERE name = ? AND tag = ?",
		strings.TrimSpace(name), strings.TrimSpace(tag)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", stats.ErrPlayerNotFound
	}
	return id, err
}

type scanner interface{ Scan(...any) error }

func scanPlayer(row scanner) (*Player, error) {
	var p Player
	var discordID sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Tag, &discordID, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.DiscordID = discordID.String
	return &p, nil
}

func scanAggregate(row scanner) (stats.PlayerAggregate, error) {
	var a stats.PlayerAggregate
	err := row.Scan(&a.Name, &a.Tag, &a.MatchesPlayed, &a.Wins, &a.TotalKills, &a.TotalDeaths,
		&a.TotalAssists, &a.TotalACS, &a.TotalFirstBloods, &a.TotalHeadshotKills)
	return a, err
}

// nullable stores empty strings as NULL so foreign keys stay optional.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
