package repositories

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository  *UserRepository
	ClassRepository *ClassRepository
	TokenRepository *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DB) *Repositories {
	return &Repositories{
		UserRepository:  NewUserRepository(db),
		ClassRepository: NewClassRepository(db),
		TokenRepository: NewTokenRepository(db),
	}
}
