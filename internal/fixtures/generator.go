package fixtures

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Domain errors
var (
	ErrInvalidRange = errors.New("invalid range: min must be at least 1 and not greater than max")
	ErrEmptyChoices = errors.New("cannot pick from an empty list")
)

// Gender is the token a generated user profile is derived from
type Gender string

// Supported gender tokens
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Title returns the form title matching the gender token
func (g Gender) Title() string {
	if g == GenderFemale {
		return "Mrs"
	}
	return "Mr"
}

// Age bounds for generated dates of birth
const (
	minAge = 18
	maxAge = 80
)

// Countries the target site's signup form accepts
var Countries = []string{
	"India",
	"United States",
	"Canada",
	"Australia",
	"Israel",
	"New Zealand",
	"Singapore",
}

// SearchTerms is the vocabulary used for product searches
var SearchTerms = []string{"Top", "Dress", "Tshirt", "Jeans", "Saree"}

var maleFirstNames = []string{
	"James", "John", "Robert", "Michael", "William", "David",
	"Richard", "Thomas", "Daniel", "Matthew", "Andrew", "Joshua",
}

var femaleFirstNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Susan",
	"Jessica", "Sarah", "Karen", "Nancy", "Emily", "Laura",
}

// DateOfBirth holds a birthdate as the decimal strings the signup
// form's select elements expect, month 1-based
type DateOfBirth struct {
	Day   string
	Month string
	Year  string
}

// CreditCard holds synthetic card details for form filling only.
// The number is a test-scheme number with no Luhn or gateway validity
// guarantee; the expiry pair is derived from a single future date so
// month and year are always coherent.
type CreditCard struct {
	Number      string
	CVV         string
	ExpiryMonth int
	ExpiryYear  int
}

// ExpiryMonthString returns the zero-padded month for form filling
func (c CreditCard) ExpiryMonthString() string {
	return fmt.Sprintf("%02d", c.ExpiryMonth)
}

// ExpiryYearString returns the four-digit year for form filling
func (c CreditCard) ExpiryYearString() string {
	return strconv.Itoa(c.ExpiryYear)
}

// User is one internally consistent signup profile. Created once per
// test, immutable after creation, threaded through the flow by value.
type User struct {
	Gender       Gender
	Title        string
	Name         string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	DateOfBirth  DateOfBirth
	Company      string
	Address1     string
	Address2     string
	Country      string
	State        string
	City         string
	Zipcode      string
	MobileNumber string
	Card         CreditCard
}

// Generator produces randomized fixture values. It holds no shared
// mutable state beyond its own faker instance; a fresh Generator per
// test worker is safe and cheap.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// New creates a randomly seeded generator
func New() *Generator {
	return &Generator{
		faker: gofakeit.New(0),
		now:   time.Now,
	}
}

// NewSeeded creates a deterministic generator for reproducible tests
func NewSeeded(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// RandomQuantity returns an integer uniformly sampled in [min, max]
// inclusive. Malformed bounds fail fast rather than silently swapping,
// so test-authoring bugs surface at the call site.
func (g *Generator) RandomQuantity(min, max int) (int, error) {
	if min < 1 || min > max {
		return 0, fmt.Errorf("%w: got [%d, %d]", ErrInvalidRange, min, max)
	}
	return g.faker.IntRange(min, max), nil
}

// IntRange returns a bounded random integer, inclusive on both ends
func (g *Generator) IntRange(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("%w: got [%d, %d]", ErrInvalidRange, min, max)
	}
	return g.faker.IntRange(min, max), nil
}

// Bool returns a uniformly random boolean
func (g *Generator) Bool() bool {
	return g.faker.Bool()
}

// Pick returns a uniformly chosen element of choices
func (g *Generator) Pick(choices []string) (string, error) {
	if len(choices) == 0 {
		return "", ErrEmptyChoices
	}
	return g.faker.RandomString(choices), nil
}

// SearchTerm returns a product search term from the fixed vocabulary
func (g *Generator) SearchTerm() string {
	return g.faker.RandomString(SearchTerms)
}

// ReviewText returns a short product review body
func (g *Generator) ReviewText() string {
	return g.faker.Sentence(12)
}

// UniqueEmail returns an address that is unique across concurrent
// workers and repeated runs, built from a timestamp plus a random
// suffix. The target site rejects signups with a previously used email.
func (g *Generator) UniqueEmail(prefix string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s.%d.%s@example.com", sanitizeLocal(prefix), g.now().UnixNano(), suffix)
}

// DateOfBirth generates a birthdate whose age, computed against the
// generation instant, is in [18, 80] inclusive.
func (g *Generator) DateOfBirth() DateOfBirth {
	age := g.faker.IntRange(minAge, maxAge)
	// Anchor on the exact birthday, then push the date earlier by up to
	// 364 days. The subject stays the same whole-year age either way.
	birth := g.now().AddDate(-age, 0, 0)
	birth = birth.AddDate(0, 0, -g.faker.IntRange(0, 364))

	return DateOfBirth{
		Day:   strconv.Itoa(birth.Day()),
		Month: strconv.Itoa(int(birth.Month())),
		Year:  strconv.Itoa(birth.Year()),
	}
}

// CreditCard generates synthetic card details. The expiry is a single
// draw 12-60 months out, which guarantees a year strictly in the
// future and a month consistent with it.
func (g *Generator) CreditCard() CreditCard {
	expiry := g.now().AddDate(0, g.faker.IntRange(12, 60), 0)

	return CreditCard{
		Number:      g.faker.CreditCardNumber(&gofakeit.CreditCardOptions{Types: []string{"visa", "mastercard"}}),
		CVV:         g.faker.CreditCardCvv(),
		ExpiryMonth: int(expiry.Month()),
		ExpiryYear:  expiry.Year(),
	}
}

// User generates one internally consistent signup profile: the gender
// token decides both the title and the first-name vocabulary, and the
// email is derived from the chosen name.
func (g *Generator) User() User {
	gender := GenderMale
	firstNames := maleFirstNames
	if g.faker.Bool() {
		gender = GenderFemale
		firstNames = femaleFirstNames
	}

	firstName := g.faker.RandomString(firstNames)
	lastName := g.faker.LastName()

	return User{
		Gender:       gender,
		Title:        gender.Title(),
		Name:         firstName + " " + lastName,
		Email:        g.emailFor(firstName, lastName),
		Password:     g.faker.Password(true, true, true, false, false, 12),
		FirstName:    firstName,
		LastName:     lastName,
		DateOfBirth:  g.DateOfBirth(),
		Company:      g.faker.Company(),
		Address1:     g.faker.Street(),
		Address2:     fmt.Sprintf("Apt. %d", g.faker.IntRange(1, 999)),
		Country:      g.faker.RandomString(Countries),
		State:        g.faker.State(),
		City:         g.faker.City(),
		Zipcode:      g.faker.Zip(),
		MobileNumber: g.faker.Phone(),
		Card:         g.CreditCard(),
	}
}

// emailFor derives a syntactically valid, lower-cased address from a
// chosen name, unique per generation.
func (g *Generator) emailFor(firstName, lastName string) string {
	local := fmt.Sprintf("%s.%s", sanitizeLocal(firstName), sanitizeLocal(lastName))
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s.%s@example.com", local, suffix)
}

// sanitizeLocal strips anything that is not a letter or digit and
// lower-cases the rest, keeping the local part RFC-safe.
func sanitizeLocal(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
