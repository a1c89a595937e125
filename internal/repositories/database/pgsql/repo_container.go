package pgsql

import (
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
)

func NewRepositoryProvider(db PgxIface) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(db),
		SessionRepo:    newPgxSessionRepository(db),
		GenerationRepo: newPgxGenerationRepository(db),
		UsageRepo:      newPgxUsageRepository(db),
	}
}
