package db

import (
	"acelera/src/config"
	"acelera/src/models"
	"acelera/src/types"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Seed struct {
	Clients      []models.Client
	Services     []models.Service
	Bookings     []models.Booking
	Requests     []models.TattooRequest
	Transactions []models.Transaction
	Settings     []models.Setting
	Users        []models.User
}

func ptr[T any](v T) *T {
	return &v
}

// DefaultSeed is the demo studio, with dates relative to now.
func DefaultSeed(now time.Time) *Seed {
	d := decimal.NewFromInt
	days := func(n int) time.Time { return now.AddDate(0, 0, n) }
	hours := func(n int) time.Time { return now.Add(time.Duration(n) * time.Hour) }

	services := []models.Service{
		{ID: "1", Name: "Flash Tattoo (Pequena)", Duration: 60, Price: d(150)},
		{ID: "2", Name: "Design Personalizado (Médio)", Duration: 180, Price: d(450)},
		{ID: "3", Name: "Sessão Fechamento (Manga)", Duration: 240, Price: d(800)},
		{ID: "4", Name: "Retoque", Duration: 30, Price: d(50)},
	}
	clients := []models.Client{
		{
			ID:            "c1",
			Name:          "Alice Cooper",
			Email:         "alice@example.com",
			Phone:         "(11) 99999-1234",
			Notes:         "Gosta do estilo tradicional. Alérgica a látex.",
			PhotoURLs:     types.StringArray{"https://picsum.photos/200/200?random=1", "https://picsum.photos/200/200?random=2"},
			TotalSessions: 3,
			LastVisit:     ptr(days(-30)),
		},
		{
			ID:            "c2",
			Name:          "Bob Marley",
			Email:         "bob@example.com",
			Phone:         "(11) 98888-5678",
			Notes:         "Trabalhando nas costas inteira. Estilo geométrico.",
			PhotoURLs:     types.StringArray{"https://picsum.photos/200/200?random=3"},
			TotalSessions: 1,
			LastVisit:     ptr(days(-60)),
		},
		{
			ID:        "c3",
			Name:      "Charlie Brown",
			Email:     "charlie@example.com",
			Phone:     "(11) 97777-4321",
			Notes:     "Primeira vez. Nervoso.",
			PhotoURLs: types.StringArray{},
		},
		{
			ID:            "c4",
			Name:          "Diana Prince",
			Email:         "diana@themyscira.com",
			Phone:         "(11) 91111-2222",
			Notes:         "Cobertura no pulso esquerdo.",
			PhotoURLs:     types.StringArray{"https://picsum.photos/200/200?random=4"},
			TotalSessions: 5,
			LastVisit:     ptr(days(-10)),
		},
	}
	bookings := []models.Booking{
		{
			ID: "b1", ClientID: "c1", ClientName: "Alice Cooper", ClientPhone: "(11) 99999-1234",
			ServiceID: ptr("1"), ServiceName: "Flash Tattoo (Pequena)",
			StartAt: hours(2), EndAt: hours(3),
			Status: types.BOOKING_CONFIRMED, Price: d(150), IsPaid: true,
		},
		{
			ID: "b2", ClientID: "c2", ClientName: "Bob Marley", ClientPhone: "(11) 98888-5678",
			ServiceID: ptr("3"), ServiceName: "Sessão Fechamento (Manga)",
			StartAt: days(1), EndAt: days(1).Add(4 * time.Hour),
			Status: types.BOOKING_PENDING, Price: d(800), IsPaid: false,
		},
		{
			ID: "b3", ClientID: "c4", ClientName: "Diana Prince", ClientPhone: "(11) 91111-2222",
			ServiceID: ptr("2"), ServiceName: "Design Personalizado (Médio)",
			StartAt: days(-1), EndAt: days(-1).Add(3 * time.Hour),
			Status: types.BOOKING_COMPLETED, Price: d(450), IsPaid: true,
		},
	}
	requests := []models.TattooRequest{
		{
			ID:            "r1",
			ClientName:    "João da Silva",
			ClientEmail:   "joao.silva@email.com",
			ClientPhone:   "(11) 91234-5678",
			Description:   "Gostaria de fazer um leão realista no antebraço, com olhos azuis.",
			BodyPart:      "Antebraço Direito",
			Size:          "15cm x 10cm",
			Style:         "Realismo Preto e Cinza",
			Budget:        "R$ 800 - R$ 1000",
			PhotoURLs:     types.StringArray{"https://picsum.photos/300/300?random=10"},
			AvailableDays: types.StringArray{"Segunda à tarde", "Quarta o dia todo"},
			Status:        types.REQUEST_PENDING,
			Timestamps:    types.Timestamps{CreatedAt: days(-1)},
		},
		{
			ID:            "r2",
			ClientName:    "Maria Oliveira",
			ClientEmail:   "maria.oli@email.com",
			ClientPhone:   "(21) 99876-5432",
			Description:   "Rosas delicadas fineline.",
			BodyPart:      "Ombro",
			Size:          "Pequena",
			Style:         "Fineline",
			Budget:        "A combinar",
			PhotoURLs:     types.StringArray{"https://picsum.photos/300/300?random=11"},
			AvailableDays: types.StringArray{"Finais de semana"},
			Status:        types.REQUEST_NEGOTIATING,
			AdminNotes:    "Pedi foto do local, aguardando resposta.",
			Timestamps:    types.Timestamps{CreatedAt: days(-2)},
		},
	}
	transactions := []models.Transaction{
		{ID: "t1", Type: types.TRANSACTION_INCOME, Amount: d(150), Description: "Alice Cooper - Flash", Category: "Serviço", Date: now, BookingID: ptr("b1")},
		{ID: "t2", Type: types.TRANSACTION_EXPENSE, Amount: d(50), Description: "Suprimentos de Tinta", Category: "Materiais", Date: days(-1)},
		{ID: "t3", Type: types.TRANSACTION_INCOME, Amount: d(450), Description: "Diana Prince - Personalizado", Category: "Serviço", Date: days(-1), BookingID: ptr("b3")},
		{ID: "t4", Type: types.TRANSACTION_EXPENSE, Amount: d(1200), Description: "Aluguel do Estúdio", Category: "Aluguel", Date: days(-5)},
		{ID: "t5", Type: types.TRANSACTION_INCOME, Amount: d(200), Description: "Sinal - Bob", Category: "Serviço", Date: days(-2)},
	}
	return &Seed{
		Clients:      clients,
		Services:     services,
		Bookings:     bookings,
		Requests:     requests,
		Transactions: transactions,
		Settings: []models.Setting{
			{SettingKey: "studio_name", SettingValue: config.STUDIO_NAME, Group: "studio"},
			{SettingKey: "timezone", SettingValue: config.StudioLocation().String(), Group: "studio"},
			{SettingKey: "submit_delay", SettingValue: config.SubmitDelay().String(), Group: "intake"},
		},
		Users: []models.User{
			{ID: "u1", Name: "Artista", Email: "artista@aceleratattoo.com", Role: types.ROLE_TATTOOIST},
		},
	}
}

type seedFile struct {
	Services []struct {
		ID       string  `yaml:"id"`
		Name     string  `yaml:"name"`
		Duration int     `yaml:"duration"`
		Price    float64 `yaml:"price"`
	} `yaml:"services"`
	Clients []struct {
		ID            string   `yaml:"id"`
		Name          string   `yaml:"name"`
		Email         string   `yaml:"email"`
		Phone         string   `yaml:"phone"`
		Notes         string   `yaml:"notes"`
		PhotoURLs     []string `yaml:"photo_urls"`
		TotalSessions int      `yaml:"total_sessions"`
	} `yaml:"clients"`
}

// ParseSeed decodes a YAML catalog of services and clients.
func ParseSeed(b []byte) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	seed := &Seed{}
	for _, s := range f.Services {
		if s.ID == "" || s.Duration <= 0 || s.Price < 0 {
			return nil, fmt.Errorf("invalid service %q in seed file", s.ID)
		}
		seed.Services = append(seed.Services, models.Service{
			ID:       s.ID,
			Name:     s.Name,
			Duration: s.Duration,
			Price:    decimal.NewFromFloat(s.Price),
		})
	}
	for _, c := range f.Clients {
		if c.ID == "" || c.TotalSessions < 0 {
			return nil, fmt.Errorf("invalid client %q in seed file", c.ID)
		}
		photos := types.StringArray(c.PhotoURLs)
		if photos == nil {
			photos = types.StringArray{}
		}
		seed.Clients = append(seed.Clients, models.Client{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			Notes:         c.Notes,
			PhotoURLs:     photos,
			TotalSessions: c.TotalSessions,
		})
	}
	return seed, nil
}

func LoadSeedFile(path string) (*Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(b)
}

// Merge replaces the catalog of s with the non-empty parts of other.
func (s *Seed) Merge(other *Seed) {
	if other == nil {
		return
	}
	if len(other.Services) > 0 {
		s.Services = other.Services
	}
	if len(other.Clients) > 0 {
		s.Clients = other.Clients
	}
}
