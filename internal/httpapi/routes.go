// Domain routes: read-only access to match/round history over
// internal/persistence, the HTTP counterpart to the teacher's gate/api
// handlers (e.g. gate/api/auth.go) but fronting this module's own
// match-history domain instead of login/registration.
package httpapi

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mahjongcore/internal/enginerr"
	"mahjongcore/internal/persistence"
)

// RegisterMatchRoutes wires read endpoints for completed/in-progress
// matches onto group.
func RegisterMatchRoutes(group *RouterGroup, repo persistence.Repository) {
	group.GET("/matches/:id", getMatch(repo))
	group.GET("/matches/:id/rounds", listRounds(repo))
	group.GET("/matches/:id/rounds/:n", getRound(repo))
	group.GET("/tables/:tableID/matches", listMatchesByTable(repo))
}

func getMatch(repo persistence.Repository) HandlerFunc {
	return func(c *Context) error {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.BadRequest("invalid match id")
			return nil
		}
		rec, err := repo.FindGameRecord(c.Request().Context(), id)
		if errors.Is(err, enginerr.ErrRecordNotFound) {
			c.NotFound("match not found")
			return nil
		}
		if err != nil {
			return err
		}
		c.Success(rec)
		return nil
	}
}

func listRounds(repo persistence.Repository) HandlerFunc {
	return func(c *Context) error {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.BadRequest("invalid match id")
			return nil
		}
		rounds, err := repo.FindRoundRecords(c.Request().Context(), id)
		if err != nil {
			return err
		}
		c.Success(rounds)
		return nil
	}
}

func getRound(repo persistence.Repository) HandlerFunc {
	return func(c *Context) error {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.BadRequest("invalid match id")
			return nil
		}
		roundNumber, err := parseNonNegativeInt(c.Param("n"))
		if err != nil {
			c.BadRequest("invalid round number")
			return nil
		}
		rec, err := repo.FindRoundRecord(c.Request().Context(), id, roundNumber)
		if errors.Is(err, enginerr.ErrRecordNotFound) {
			c.NotFound("round not found")
			return nil
		}
		if err != nil {
			return err
		}
		c.Success(rec)
		return nil
	}
}

func listMatchesByTable(repo persistence.Repository) HandlerFunc {
	return func(c *Context) error {
		tableID := c.Param("tableID")
		limit, _ := parseNonNegativeInt(c.QueryDefault("limit", "20"))
		recs, err := repo.FindGameRecordsByTable(c.Request().Context(), tableID, int64(limit))
		if err != nil {
			return err
		}
		c.Success(recs)
		return nil
	}
}

func parseNonNegativeInt(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errors.New("httpapi: empty integer")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("httpapi: not a non-negative integer")
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
