package handlers

// AppHandlers содержит все HTTP-хендлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	VerificationHandler *VerificationHandler
	UserHandler         *UserHandler
	CityHandler         *CityHandler
}
