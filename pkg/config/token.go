package config

type TokenConf struct {
	AccessTokenExpiryHour  int
	RefreshTokenExpiryHour int
	AccessTokenSecret      string
	RefreshTokenSecret     string
}

func NewTokenConf() *TokenConf {
	c := GetConfig()
	expiry := c.Auth.AccessTokenExpiryHour
	if expiry == 0 {
		expiry = 1
	}
	return &TokenConf{
		AccessTokenExpiryHour:  expiry,
		RefreshTokenExpiryHour: 168,
		AccessTokenSecret:      c.Auth.AccessTokenSecret,
		RefreshTokenSecret:     c.Auth.RefreshTokenSecret,
	}
}
