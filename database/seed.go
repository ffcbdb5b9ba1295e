package database

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedLocation struct {
	Lat, Lon float64
	Desc     string
	ImageURL string
}

type seedRiddle struct {
	Desc       string
	Difficulty int
	TimeLimit  int
	MaxDist    float64
}

var seedLocations = []seedLocation{
	{51.2070, 16.1550, "Rynek w Legnicy", "https://images.unsplash.com/photo-1590503831101-55cdf1464dc6"},
	{51.2063, 16.1586, "Zamek Piastowski", "https://images.unsplash.com/photo-1585952295628-95ac5e5eef42"},
	{51.2088, 16.1502, "Park Miejski", "https://images.unsplash.com/photo-1519331379826-f10be5486c6f"},
	{51.2095, 16.1611, "Katedra Świętych Apostołów Piotra i Pawła", "https://images.unsplash.com/photo-1548625149-fc4a29cf7092"},
	{51.2072, 16.1565, "Ratusz miejski", "https://images.unsplash.com/photo-1555992336-fb0d29498b13"},
	{51.2042, 16.1598, "Brama Głogowska", "https://images.unsplash.com/photo-1577207404389-43a40797e63e"},
	{51.2105, 16.1490, "Teatr Modrzejewskiej", "https://images.unsplash.com/photo-1503095396549-807759245b35"},
	{51.2085, 16.1625, "Pomnik Bitwy Legnickiej", "https://images.unsplash.com/photo-1567522173839-e91806015fb3"},
	{51.2078, 16.1538, "Kamienica Śledziowa", "https://images.unsplash.com/photo-1558618666-fcd25c85cd64"},
	{51.2068, 16.1572, "Plac Słowiański", "https://images.unsplash.com/photo-1541888946425-d81bb19240f5"},
	{51.2058, 16.1448, "Dworzec PKP Legnica", "https://images.unsplash.com/photo-1474487548417-781cb71495f3"},
	{51.2112, 16.1555, "Park Kopernika", "https://images.unsplash.com/photo-1510798831971-661eb04b3739"},
	{51.2045, 16.1520, "Fontanna na Placu Wilsona", "https://images.unsplash.com/photo-1547471080-7cc2caa01a7e"},
	{51.2092, 16.1642, "Kościół Mariański", "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4"},
	{51.2118, 16.1578, "Cmentarz Komunalny", "https://images.unsplash.com/photo-1533113414723-e1df0beb0744"},
	{51.2082, 16.1595, "Wieża Ciśnień", "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad"},
	{51.2055, 16.1612, "Kościół św. Jana", "https://images.unsplash.com/photo-1605104185614-074e27e4aca3"},
	{51.2098, 16.1528, "Galeria Piastów", "https://images.unsplash.com/photo-1519567241046-7f570eee3ce6"},
	{51.2075, 16.1605, "Ulica Najświętszej Marii Panny", "https://images.unsplash.com/photo-1477959858617-67f85cf4f1df"},
	{51.2035, 16.1555, "Amfiteatr miejski", "https://images.unsplash.com/photo-1524368535928-5b5e00ddc76b"},
}

// seedRiddles pairs with seedLocations by index.
var seedRiddles = []seedRiddle{
	{"Jesteś w samym sercu Legnicy. Spójrz na kolorowe kamienice.", model.DifficultyEasy, 120, 300},
	{"Historyczna siedziba Piastów. Gdzie jesteś?", model.DifficultyMedium, 90, 200},
	{"Dużo zieleni, alejki i cisza. To miejsce zna każdy legniczanin.", model.DifficultyHard, 60, 150},
	{"Najważniejsza świątynia w mieście. Jej wieże widać z daleka.", model.DifficultyMedium, 100, 200},
	{"Budynek z zegarem, miejsce władzy miejskiej od wieków.", model.DifficultyEasy, 110, 250},
	{"Zabytkowa brama obronna, jedna z nielicznych zachowanych.", model.DifficultyHard, 80, 150},
	{"Tu wystawia się spektakle. Budynek nosi imię wielkiej aktorki.", model.DifficultyMedium, 95, 180},
	{"Upamiętnia bitwę z 1241 roku. Stoi przy ruchliwej ulicy.", model.DifficultyHard, 75, 140},
	{"Zabytkowa kamienica z ciekawą nazwą związaną z rybami.", model.DifficultyHard, 70, 120},
	{"Reprezentacyjny plac w centrum, miejsce wydarzeń kulturalnych.", model.DifficultyEasy, 105, 220},
	{"Tutaj rozpoczyna się i kończy podróż pociągiem.", model.DifficultyEasy, 115, 280},
	{"Park ze stuletnimi drzewami, nosi imię astronoma.", model.DifficultyMedium, 85, 190},
	{"Woda tryska wysoko w centrum placu nazwanego imieniem prezydenta USA.", model.DifficultyMedium, 90, 175},
	{"Gotycka świątynia, Maryja jest jej patronką.", model.DifficultyHard, 80, 160},
	{"Miejsce wiecznego spoczynku, pełne pomników i historii.", model.DifficultyMedium, 100, 250},
	{"Wysoka budowla przemysłowa, dawniej zaopatrywała miasto w wodę.", model.DifficultyHard, 85, 180},
	{"Średniowieczny kościół z czerwonej cegły, patron apostoł.", model.DifficultyMedium, 95, 190},
	{"Centrum handlowe nazwane od średniowiecznej dynastii.", model.DifficultyEasy, 125, 300},
	{"Główna ulica handlowa, prowadzi do rynku.", model.DifficultyMedium, 100, 200},
	{"Obiekt na świeżym powietrzu, tu odbywają się koncerty latem.", model.DifficultyHard, 90, 170},
}

var seedTestUsers = []struct {
	Email       string
	DisplayName string
}{
	{"anna.kowalska@example.com", "Anna Kowalska"},
	{"jan.nowak@example.com", "Jan Nowak"},
	{"maria.wisniewski@example.com", "Maria Wiśniewski"},
	{"piotr.kaminski@example.com", "Piotr Kamiński"},
	{"katarzyna.lewandowska@example.com", "Katarzyna Lewandowska"},
	{"tomasz.zielinski@example.com", "Tomasz Zieliński"},
	{"magdalena.szymanska@example.com", "Magdalena Szymańska"},
	{"krzysztof.wozniak@example.com", "Krzysztof Woźniak"},
	{"joanna.kowalczyk@example.com", "Joanna Kowalczyk"},
	{"marcin.kozlowski@example.com", "Marcin Kozłowski"},
	{"aleksandra.jankowska@example.com", "Aleksandra Jankowska"},
	{"adam.wojciechowski@example.com", "Adam Wojciechowski"},
	{"ewa.kwiatkowska@example.com", "Ewa Kwiatkowska"},
	{"lukasz.kaczmarek@example.com", "Łukasz Kaczmarek"},
	{"agnieszka.mazur@example.com", "Agnieszka Mazur"},
	{"pawel.krawczyk@example.com", "Paweł Krawczyk"},
	{"beata.piotrowski@example.com", "Beata Piotrowski"},
	{"daniel.grabowski@example.com", "Daniel Grabowski"},
	{"marta.nowakowska@example.com", "Marta Nowakowska"},
	{"robert.michalski@example.com", "Robert Michalski"},
}

// SeedDatabase fills an empty database with the Legnica location set, one
// riddle per location, an admin and a handful of confirmed test accounts.
// Every step is idempotent so the seed can run on each startup.
func SeedDatabase(db *gorm.DB) error {
	if err := seedLocationsAndRiddles(db); err != nil {
		return fmt.Errorf("seeding locations and riddles: %w", err)
	}
	if err := ensureUser(db, "test@example.com", "Test User", "Haslo123!", model.RoleUser); err != nil {
		return fmt.Errorf("seeding test user: %w", err)
	}
	if err := ensureUser(db, "admin@example.com", "Admin User", "Admin123!", model.RoleAdmin); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := seedTestAccounts(db); err != nil {
		return fmt.Errorf("seeding test accounts: %w", err)
	}
	log.Info().Msg("Database seeding completed")
	return nil
}

func seedLocationsAndRiddles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(len(seedLocations)) {
		log.Info().Msg("Locations already exist, skipping location seed")
		return nil
	}

	for i, loc := range seedLocations {
		desc := loc.Desc
		location := model.Location{
			Latitude:         loc.Lat,
			Longitude:        loc.Lon,
			ImageURL:         loc.ImageURL,
			ShortDescription: &desc,
		}

		var existing model.Location
		err := db.Where("latitude = ? AND longitude = ? AND short_description = ?", loc.Lat, loc.Lon, desc).
			First(&existing).Error
		switch {
		case err == nil:
			location = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&location).Error; err != nil {
				return err
			}
		default:
			return err
		}

		r := seedRiddles[i]
		var riddleCount int64
		if err := db.Model(&model.Riddle{}).
			Where("description = ? AND location_id = ?", r.Desc, location.ID).
			Count(&riddleCount).Error; err != nil {
			return err
		}
		if riddleCount == 0 {
			riddle := model.Riddle{
				Description:       r.Desc,
				Difficulty:        r.Difficulty,
				TimeLimitSeconds:  r.TimeLimit,
				MaxDistanceMeters: r.MaxDist,
				LocationID:        location.ID,
			}
			if err := db.Create(&riddle).Error; err != nil {
				return err
			}
		}
	}

	log.Info().Int("locations", len(seedLocations)).Msg("Seeded locations and riddles")
	return nil
}

func ensureUser(db *gorm.DB, email, displayName, password, role string) error {
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		DisplayName:    displayName,
		Role:           role,
		EmailConfirmed: true,
		SecurityStamp:  uuid.NewString(),
	}
	return db.Create(&user).Error
}

func seedTestAccounts(db *gorm.DB) error {
	created := 0
	for _, tu := range seedTestUsers {
		var count int64
		if err := db.Model(&model.User{}).Where("email = ?", tu.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("User123!"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := model.User{
			ID:             uuid.NewString(),
			Email:          tu.Email,
			PasswordHash:   string(hash),
			DisplayName:    tu.DisplayName,
			Role:           model.RoleUser,
			EmailConfirmed: true,
			SecurityStamp:  uuid.NewString(),
			CreatedAt:      time.Now().UTC().AddDate(0, 0, -rand.Intn(364)-1),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		created++
	}
	if created > 0 {
		log.Info().Int("created", created).Msg("Created test accounts")
	}
	return nil
}
