package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoyamagallery/backend/internal/domain"
	"github.com/aoyamagallery/backend/internal/messaging/kafka"
	"github.com/aoyamagallery/backend/internal/storage/memory"
)

type recordingPublisher struct {
	topics []string
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) PublishEvent(topic, key string, event any) error {
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return p.err
}

func newFixture(t *testing.T) (*Service, *memory.ArtworkRepository, *memory.OrderRepository, *recordingPublisher) {
	t.Helper()
	artworks := memory.NewArtworkRepository()
	orders := memory.NewOrderRepository(artworks)
	publisher := &recordingPublisher{}
	svc := NewService(orders, artworks, publisher, nil, nil)
	return svc, artworks, orders, publisher
}

func TestCreateOrder(t *testing.T) {
	svc, artworks, orders, publisher := newFixture(t)
	artwork := artworks.Seed(domain.Artwork{Title: "Sunset over the Bay"})

	phone := "+81-90-1234-5678"
	created, err := svc.Create(CreateOrderInput{
		ArtworkID:    artwork.ID,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
		Phone:        &phone,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, artwork.ID, created.ArtworkID)
	assert.Equal(t, "Sunset over the Bay", created.ArtworkTitle)
	assert.Equal(t, "Aiko Tanaka", created.CustomerName)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, 1, orders.Count())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.TopicOrderEvents, publisher.topics[0])
	event, ok := publisher.events[0].(kafka.OrderEvent)
	require.True(t, ok)
	assert.Equal(t, kafka.EventTypeOrderCreated, event.EventType)
	assert.Equal(t, created.ID, event.OrderID)
	assert.Equal(t, "Sunset over the Bay", event.ArtworkTitle)

	second, err := svc.Create(CreateOrderInput{
		ArtworkID:    artwork.ID,
		CustomerName: "Kenji Mori",
		Email:        "kenji@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID, "repeat orders must get distinct ids")
}

func TestCreateOrderValidation(t *testing.T) {
	svc, artworks, orders, publisher := newFixture(t)
	artworks.Seed(domain.Artwork{Title: "Sunset over the Bay"})

	_, err := svc.Create(CreateOrderInput{
		ArtworkID:    1,
		CustomerName: "",
		Email:        "not-an-address",
	})
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 2, "every violation must be reported at once")
	assert.ErrorIs(t, err, domain.ErrCustomerNameRequired)
	assert.ErrorIs(t, err, domain.ErrEmailInvalid)

	assert.Equal(t, 0, orders.Count(), "no write on rejection")
	assert.Empty(t, publisher.events, "no event on rejection")
}

func TestCreateOrderArtworkMissing(t *testing.T) {
	svc, _, orders, _ := newFixture(t)

	_, err := svc.Create(CreateOrderInput{
		ArtworkID:    41,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
	})
	require.ErrorIs(t, err, domain.ErrArtworkNotFound)
	assert.Contains(t, err.Error(), "41", "error must carry the requested id")
	assert.Equal(t, 0, orders.Count())
}

func TestCreateOrderArtworkSold(t *testing.T) {
	svc, artworks, orders, publisher := newFixture(t)
	artwork := artworks.Seed(domain.Artwork{Title: "Winter Pines", IsSold: true})

	_, err := svc.Create(CreateOrderInput{
		ArtworkID:    artwork.ID,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
	})
	require.ErrorIs(t, err, domain.ErrArtworkSold)
	assert.Equal(t, 0, orders.Count(), "sold rejection must not persist an order")
	assert.Empty(t, publisher.events)
}

// raceOrderRepository approves nothing: every Create loses the row-lock race.
type raceOrderRepository struct{}

func (raceOrderRepository) Create(domain.Order, string) (domain.Order, error) {
	return domain.Order{}, domain.ErrArtworkSold
}

func (raceOrderRepository) FindByID(int64) (domain.Order, error) {
	return domain.Order{}, domain.ErrOrderNotFound
}

func TestCreateOrderLosesRaceAgainstSale(t *testing.T) {
	artworks := memory.NewArtworkRepository()
	artwork := artworks.Seed(domain.Artwork{Title: "Harbor Lights"})
	publisher := &recordingPublisher{}
	svc := NewService(raceOrderRepository{}, artworks, publisher, nil, nil)

	_, err := svc.Create(CreateOrderInput{
		ArtworkID:    artwork.ID,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
	})
	require.ErrorIs(t, err, domain.ErrArtworkSold)
	assert.Empty(t, publisher.events)
}

func TestCreateOrderPublishFailureDoesNotFailOrder(t *testing.T) {
	svc, artworks, orders, publisher := newFixture(t)
	artwork := artworks.Seed(domain.Artwork{Title: "Harbor Lights"})
	publisher.err = errors.New("broker down")

	created, err := svc.Create(CreateOrderInput{
		ArtworkID:    artwork.ID,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
	})
	require.NoError(t, err, "a committed order must not fail on a broker problem")
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, orders.Count())
}

func TestGetOrderByID(t *testing.T) {
	svc, artworks, _, _ := newFixture(t)
	artwork := artworks.Seed(domain.Artwork{Title: "Harbor Lights"})

	created, err := svc.Create(CreateOrderInput{
		ArtworkID:    artwork.ID,
		CustomerName: "Aiko Tanaka",
		Email:        "aiko@example.com",
	})
	require.NoError(t, err)

	found, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Harbor Lights", found.ArtworkTitle)

	_, err = svc.GetByID(9000)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Contains(t, err.Error(), "9000")
}
