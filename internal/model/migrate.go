package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates partial
// unique indexes. The indexes back the invariants the services pre-check:
// losing a query-then-insert race surfaces as a constraint error instead of
// silently duplicating rows.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Person{},
		&RoleAssignment{},
		&City{},
		&Address{},
		&Branch{},
		&Admin{},
		&Trainer{},
		&Client{},
		&ClientBranch{},
		&Invitation{},
		&Conversation{},
		&MessageQuota{},
		&Message{},
		&Post{},
		&PostLike{},
	); err != nil {
		return err
	}

	stmts := []string{
		// Case-insensitive unique email for non-soft-deleted users.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower " +
			"ON users ((lower(email))) WHERE deleted_at IS NULL AND email <> ''",

		// One user per external identity subject.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_external_subject " +
			"ON users (external_subject) WHERE deleted_at IS NULL AND external_subject <> ''",

		// Document uniqueness across persons.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_persons_document " +
			"ON persons (document_type, document_number) WHERE deleted_at IS NULL",

		// At most one active admin per branch.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_branch_active " +
			"ON admins (branch_id) WHERE deleted_at IS NULL AND status = 'ACTIVE' AND branch_id IS NOT NULL",

		// At most one active admin row per person.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_person_active " +
			"ON admins (person_id) WHERE deleted_at IS NULL AND status = 'ACTIVE'",

		// At most one active client per person.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_person_active " +
			"ON clients (person_id) WHERE deleted_at IS NULL AND status = 'ACTIVE'",

		// One active link per (client, branch).
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_client_branches_active " +
			"ON client_branches (client_id, branch_id) WHERE deleted_at IS NULL AND active",

		// One thread per (client, trainer) pair.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_pair " +
			"ON conversations (client_id, trainer_id) WHERE deleted_at IS NULL",
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
