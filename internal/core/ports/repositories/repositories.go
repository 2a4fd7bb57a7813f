package repositories

// RepositoryProvider holds all the repository implementations used by the
// service layer. Constructed once at startup from the shared connection pool.
type RepositoryProvider struct {
	UserRepo UserRepositoryFacade
	OTPRepo  RegistrationOTPRepository
}
