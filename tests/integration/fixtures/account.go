package fixtures

type TestAccountData struct {
	Username string
	Email    string
	Password string
}

var TestAccount = TestAccountData{
	Username: "moktashef_user",
	Email:    "moktashef.user@example.com",
	Password: "Str0ngPass!",
}

const (
	ValidEmail       = "someone@example.com"
	ValidEmail2      = "someone.else@example.com"
	InvalidEmail     = "not-an-email"
	ValidPassword    = "Str0ngPass!"
	ValidPassword2   = "An0therPass!"
	WeakPassword     = "password"
	ValidOTP         = "482913"
	WrongOTP         = "000000"
	TestMediaFolder  = "f3k9q2m7x1"
	TestImageURL     = "https://media.example.com/base/users/f3k9q2m7x1/profile/avatar.png"
	TestImageID      = "base/users/f3k9q2m7x1/profile/avatar.png"
	TestSessionKey   = "test-session-secret"
	TestVerifyKey    = "test-verification-secret"
	TestPNGFilename  = "avatar.png"
	TestPNGMediaType = "image/png"
)

// SamplePNG is a 1x1 transparent PNG, small enough to inline in tests.
var SamplePNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}
