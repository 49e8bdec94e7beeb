package redisstore

import "time"

// Key layout. Entities live at <kind>:<id>; the remaining keys are
// secondary indexes kept in step with the entity writes.
func userKey(id string) string { return "user:" + id }

func userEmailKey(email string) string { return "user_email:" + email }

func tokenKey(id string) string { return "token:" + id }

func drillKey(id string) string { return "drill:" + id }

func sessionKey(id string) string { return "tsession:" + id }

func sessionDateKey(date time.Time) string {
	return "tsession_date:" + date.Format("2006-01-02")
}

func slotKey(id string) string { return "slot:" + id }

func assignmentKey(id string) string { return "assignment:" + id }

const (
	usersIndex    = "users"
	drillsIndex   = "drills"
	sessionsIndex = "tsessions"
)

func userTokensIndex(userID string) string { return "user:" + userID + ":tokens" }

func userDrillsIndex(userID string) string { return "user:" + userID + ":drills" }

func userSessionsIndex(userID string) string { return "user:" + userID + ":tsessions" }

func coachAssignIndex(coachID string) string { return "coach:" + coachID + ":assignments" }

func sessionSlotsIndex(sessionID string) string { return "tsession:" + sessionID + ":slots" }

func sessionAssignIndex(sessionID string) string { return "tsession:" + sessionID + ":assignments" }

func drillSlotsIndex(drillID string) string { return "drill:" + drillID + ":slots" }
