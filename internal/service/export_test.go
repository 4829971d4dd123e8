package service

import "time"

func SetAuthClock(s *AuthService, now func() time.Time) {
	s.now = now
}

func SetFriendClock(s *FriendService, now func() time.Time) {
	s.now = now
}
