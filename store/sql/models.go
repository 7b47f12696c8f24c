package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type tokenRecord struct {
	bun.BaseModel `bun:"table:oauth1_tokens,alias:ot"`

	ID          string    `bun:"id,pk"`
	Token       string    `bun:"token,notnull"`
	Kind        string    `bun:"kind,notnull"`
	ConsumerKey string    `bun:"consumer_key,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
