package pgstore

const (
	// CreateTableQuery creates the key-value profile table
	CreateTableQuery = `
		CREATE TABLE IF NOT EXISTS profile_settings (
			owner TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner, key)
		)
	`

	// SelectProfileQuery retrieves every stored pair for one owner
	SelectProfileQuery = `
		SELECT key, value
		FROM profile_settings
		WHERE owner = $1
	`

	// UpsertProfileQuery writes all pairs of a profile in one statement
	UpsertProfileQuery = `
		INSERT INTO profile_settings (owner, key, value, updated_at)
		SELECT $1, t.key, t.value, CURRENT_TIMESTAMP
		FROM UNNEST($2::text[], $3::text[]) AS t(key, value)
		ON CONFLICT (owner, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
)
