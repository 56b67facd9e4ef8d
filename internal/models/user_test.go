package models

import "testing"

func TestAuthStatusNext(t *testing.T) {
	cases := []struct {
		name   string
		status AuthStatus
		event  AuthEvent
		want   AuthStatus
	}{
		{"новый аккаунт подтверждает код", AuthStatusNew, EventCodeVerified, AuthStatusCodeVerified},
		{"подтверждённый аккаунт заполняет профиль", AuthStatusCodeVerified, EventProfileComplete, AuthStatusDone},
		{"завершённый аккаунт загружает фото", AuthStatusDone, EventPhotoUploaded, AuthStatusPhotoStep},
		{"повторная загрузка фото", AuthStatusPhotoStep, EventPhotoUploaded, AuthStatusPhotoStep},
		{"повторное подтверждение кода не меняет статус", AuthStatusDone, EventCodeVerified, AuthStatusDone},
		{"правка профиля после завершения не меняет статус", AuthStatusPhotoStep, EventProfileComplete, AuthStatusPhotoStep},
		{"код без профиля не даёт done", AuthStatusNew, EventProfileComplete, AuthStatusNew},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.status.Next(tc.event); got != tc.want {
				t.Fatalf("Next(%s, %s) = %s, ожидали %s", tc.status, tc.event, got, tc.want)
			}
		})
	}
}

func TestAuthStatusCanLogin(t *testing.T) {
	if AuthStatusNew.CanLogin() || AuthStatusCodeVerified.CanLogin() {
		t.Fatal("незавершённая регистрация не должна допускать вход")
	}
	if !AuthStatusDone.CanLogin() || !AuthStatusPhotoStep.CanLogin() {
		t.Fatal("завершённая регистрация должна допускать вход")
	}
}

func TestUserIdentifier(t *testing.T) {
	email := "user@example.com"
	phone := "+998901234567"

	emailUser := &User{AuthType: AuthTypeEmail, Email: &email}
	if emailUser.Identifier() != email {
		t.Fatalf("ожидали %s, получили %s", email, emailUser.Identifier())
	}

	phoneUser := &User{AuthType: AuthTypePhone, PhoneNumber: &phone}
	if phoneUser.Identifier() != phone {
		t.Fatalf("ожидали %s, получили %s", phone, phoneUser.Identifier())
	}
}
