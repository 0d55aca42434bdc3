package rank

import (
	"context"

	"xianverse/internal/app/ports"
)

const defaultLimit = 10

type UseCase struct {
	Users ports.UserRepository
}

// Execute returns the leaderboard ordered by (level, experience) descending.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	records, err := u.Users.ListTop(ctx, limit)
	if err != nil {
		return Response{}, err
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			UserID:       r.UserID,
			Username:     r.Username,
			Tier:         r.Tier,
			Level:        r.Level,
			Experience:   r.Experience,
			SpiritStones: r.SpiritStones,
		})
	}
	return Response{Entries: entries}, nil
}
