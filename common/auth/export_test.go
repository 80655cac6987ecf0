package auth

// NewSessionsWithClock is NewSessions reading the time from now
var NewSessionsWithClock = newSessions
