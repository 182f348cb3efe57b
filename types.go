package turbobunny

// Platform is the front-end a query arrived from.
type Platform string

const (
	PlatformHTTP     Platform = "http"
	PlatformTelegram Platform = "telegram"
)

func FullNameFromFirstAndLastName(firstName, lastName string) string {
	if lastName == "" {
		return firstName
	}
	if firstName == "" {
		return lastName
	}

	return firstName + " " + lastName
}
