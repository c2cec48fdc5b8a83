package store

// SQL query constants for the PostgreSQL backend. PostgresStore and
// pgSession methods reference these constants; list queries are built by
// ListQuery.ToSQL.

const selectEquipment = `
		SELECT id, COALESCE(nom, ''), COALESCE(type, ''), COALESCE(quantite, 0),
			COALESCE(fournisseur, ''), COALESCE(remarque, ''),
			COALESCE(NULLIF(statut, ''), 'Fonctionnel')
		FROM equipements`

// Equipment queries.
const (
	queryListByNameType = selectEquipment + `
		WHERE nom = @nom AND type = @type
		ORDER BY id ASC`

	queryFindByKey = selectEquipment + `
		WHERE nom = @nom AND type = @type
			AND COALESCE(NULLIF(statut, ''), 'Fonctionnel') = @statut
		ORDER BY id ASC
		LIMIT 1`

	queryGetEquipment = selectEquipment + `
		WHERE id = $1`

	queryInsertEquipment = `
		INSERT INTO equipements (nom, type, quantite, fournisseur, remarque, statut)
		VALUES (@nom, @type, @quantite, @fournisseur, @remarque, @statut)
		RETURNING id`

	querySetQuantity = `
		UPDATE equipements SET quantite = $2
		WHERE id = $1`

	queryOverwriteEquipment = `
		UPDATE equipements SET
			nom = @nom,
			type = @type,
			quantite = @quantite,
			fournisseur = @fournisseur,
			remarque = @remarque,
			statut = @statut
		WHERE id = @id`

	queryDeleteEquipment = `
		DELETE FROM equipements WHERE id = $1`
)

// Migration bookkeeping.
const (
	queryCreateSchemaMigrations = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	queryMigrationApplied = `
		SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`

	queryRecordMigration = `
		INSERT INTO schema_migrations (version) VALUES ($1)`
)
