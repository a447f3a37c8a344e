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

const matchColumns = `id, COALESCE(event_id, ''), map, room_code, status, processing_status, winner_team,
	text_channel_id, voice_channel_id, created_at, completed_at`

func (s *store) CreateEvent(ctx context.Context, event Event) (Event, error) {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return Event{}, errors.New("event name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, name, starts_at, created_at) VALUES (?, ?, ?, ?)",
		event.ID, event.Name, event.StartsAt, event.CreatedAt)
	if err != nil {
		return Event{}, fmt.Errorf("failed to insert event: %w", err)
	}
	log.Info("Created event", "event_id", event.ID, "name", event.Name)
	return event, nil
}

func (s *store) GetEvent(ctx context.Context, id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e Event
	err := s.db.QueryRowContext(ctx, "SELECT id, name, starts_at, created_at FROM events WHERE id = ?", id).
		Scan(&e.ID, &e.Name, &e.StartsAt, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *store) ListEvents(ctx context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, starts_at, created_at FROM events ORDER BY starts_at DESC, created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.StartsAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateMatch schedules a new OPEN match. An empty ID is replaced by a fresh UUID.
func (s *store) CreateMatch(ctx context.Context, match Match) (Match, error) {
	if match.ID == "" {
		match.ID = uuid.NewString()
	} else if _, err := uuid.Parse(match.ID); err != nil {
		return Match{}, fmt.Errorf("invalid match id %q: %w", match.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Match{}, err
	}
	defer tx.Rollback()

	if match.EventID != "" {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id = ?", match.EventID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, fmt.Errorf("%w: %s", ErrEventNotFound, match.EventID)
		}
		if err != nil {
			return Match{}, err
		}
	}

	match.Status = MatchStatusOpen
	match.ProcessingStatus = StatusNew
	match.CreatedAt = time.Now().Unix()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO matches (id, event_id, map, status, processing_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		match.ID, nullable(match.EventID), match.Map, match.Status, match.ProcessingStatus, match.CreatedAt)
	if err != nil {
		return Match{}, fmt.Errorf("failed to insert match: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Match{}, err
	} else if n == 0 {
		return Match{}, fmt.Errorf("%w: %s", ErrMatchExists, match.ID)
	}

	if err := tx.Commit(); err != nil {
		return Match{}, err
	}
	log.Info("Created match", "match_id", match.ID, "map", match.Map)
	return match, nil
}

func (s *store) GetMatch(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+matchColumns+" FROM matches WHERE id = ?", id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

func (s *store) ListMatches(ctx context.Context) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMatches(ctx, "SELECT "+matchColumns+" FROM matches ORDER BY created_at DESC")
}

// SubmitRoomCode publishes the in-game lobby code and flips the match to LIVE.
func (s *store) SubmitRoomCode(ctx context.Context, id, roomCode string) (*Match, error) {
	roomCode = strings.TrimSpace(roomCode)
	if roomCode == "" {
		return nil, errors.New("room code is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := scanMatch(tx.QueryRowContext(ctx, "SELECT "+matchColumns+" FROM matches WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	if m.Status == MatchStatusCompleted {
		return nil, ErrMatchClosed
	}

	if _, err := tx.ExecContext(ctx, "UPDATE matches SET room_code = ?, status = ? WHERE id = ?",
		roomCode, MatchStatusLive, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	m.RoomCode = roomCode
	m.Status = MatchStatusLive
	log.Info("Room code submitted", "match_id", id)
	return m, nil
}

// GetMatchesForProcessing returns every match the processor still has work for.
func (s *store) GetMatchesForProcessing(ctx context.Context) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryMatches(ctx, "SELECT "+matchColumns+" FROM matches WHERE processing_status != ? ORDER BY created_at",
		StatusCompleted)
}

// UpdateProcessingStatus transitions a match to a new state.
func (s *store) UpdateProcessingStatus(ctx context.Context, matchID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE matches SET processing_status = ? WHERE id = ?", status, matchID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMatchNotFound
	}
	return err
}

func (s *store) SetMatchChannels(ctx context.Context, matchID, textChannelID, voiceChannelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE matches SET text_channel_id = ?, voice_channel_id = ? WHERE id = ?",
		textChannelID, voiceChannelID, matchID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMatchNotFound
	}
	return err
}

// GetMatchParticipants returns the applied lines of a match ordered by position.
// Players removed since then are no longer listed.
func (s *store) GetMatchParticipants(ctx context.Context, matchID string) ([]Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.position, p.name, p.tag, m.team, m.won, m.kills, m.deaths, m.assists, m.acs,
			m.first_bloods, m.hs_percent, m.headshot_kills
		FROM match_player_stats m JOIN players p ON p.id = m.player_id
		WHERE m.match_id = ?
		ORDER BY m.position`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []Participant{}
	for rows.Next() {
		var p Participant
		var team string
		err := rows.Scan(&p.Position, &p.Name, &p.Tag, &team, &p.Won, &p.Kills, &p.Deaths, &p.Assists,
			&p.ACS, &p.FirstBloods, &p.HSPercent, &p.HeadshotKills)
		if err != nil {
			return nil, err
		}
		p.Team = stats.Team(team)
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (s *store) queryMatches(ctx context.Context, query string, args ...any) ([]*Match, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatch(row scanner) (*Match, error) {
	var m Match
	var status, processing, winner string
	err := row.Scan(&m.ID, &m.EventID, &m.Map, &m.RoomCode, &status, &processing, &winner,
		&m.TextChannelID, &m.VoiceChannelID, &m.CreatedAt, &m.CompletedAt)
	if err != nil {
		return nil, err
	}
	m.Status = MatchStatus(status)
	m.ProcessingStatus = ProcessingStatus(processing)
	m.WinnerTeam = stats.Team(winner)
	return &m, nil
}
