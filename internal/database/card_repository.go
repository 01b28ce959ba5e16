package database

import (
	"database/sql"
	"fmt"

	"github.com/example/lexibot/pkg/models"
)

// CardRepository handles database operations for the card catalog
type CardRepository struct{}

// NewCardRepository creates a new repository instance
func NewCardRepository() *CardRepository {
	return &CardRepository{}
}

// GetByID returns a single card
func (r *CardRepository) GetByID(id int) (*models.Card, error) {
	var card models.Card
	err := DB.Get(&card, "SELECT * FROM cards WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %v", err)
	}
	return &card, nil
}

// GetByTopic returns all cards belonging to a topic
func (r *CardRepository) GetByTopic(topicID int64) ([]models.Card, error) {
	var cards []models.Card
	err := DB.Select(&cards, "SELECT * FROM cards WHERE topic_id = $1 ORDER BY id", topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by topic: %v", err)
	}
	return cards, nil
}

// GetAll returns the whole catalog
func (r *CardRepository) GetAll() ([]models.Card, error) {
	var cards []models.Card
	err := DB.Select(&cards, "SELECT * FROM cards ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %v", err)
	}
	return cards, nil
}

// Create inserts a new card
func (r *CardRepository) Create(card *models.Card) error {
	if dbTypeIs("sqlite") {
		result, err := DB.Exec(`
			INSERT INTO cards (word, translation, example, topic_id, difficulty, pronunciation)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, card.Word, card.Translation, card.Example, card.TopicID, card.Difficulty, card.Pronunciation)
		if err != nil {
			return fmt.Errorf("failed to create card: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get card id: %v", err)
		}
		card.ID = int(id)
		return nil
	}

	return DB.QueryRow(`
		INSERT INTO cards (word, translation, example, topic_id, difficulty, pronunciation)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, card.Word, card.Translation, card.Example, card.TopicID, card.Difficulty, card.Pronunciation).Scan(&card.ID)
}

// GetByWordAndTopic looks a card up by its unique (word, topic) key
func (r *CardRepository) GetByWordAndTopic(word string, topicID int64) (*models.Card, error) {
	var card models.Card
	err := DB.Get(&card, "SELECT * FROM cards WHERE word = $1 AND topic_id = $2", word, topicID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card by word: %v", err)
	}
	return &card, nil
}

// Update modifies an existing card
func (r *CardRepository) Update(card *models.Card) error {
	_, err := DB.Exec(`
		UPDATE cards SET word = $1, translation = $2, example = $3, difficulty = $4,
			pronunciation = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`, card.Word, card.Translation, card.Example, card.Difficulty, card.Pronunciation, card.ID)
	if err != nil {
		return fmt.Errorf("failed to update card: %v", err)
	}
	return nil
}

// TopicRepository handles database operations for topics
type TopicRepository struct{}

// NewTopicRepository creates a new repository instance
func NewTopicRepository() *TopicRepository {
	return &TopicRepository{}
}

// GetOrCreateByName returns the topic with the given name, creating it if needed
func (r *TopicRepository) GetOrCreateByName(name string) (*models.Topic, error) {
	var topic models.Topic
	err := DB.Get(&topic, "SELECT * FROM topics WHERE name = $1", name)
	if err == nil {
		return &topic, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get topic: %v", err)
	}

	if dbTypeIs("sqlite") {
		result, err := DB.Exec("INSERT INTO topics (name) VALUES ($1)", name)
		if err != nil {
			return nil, fmt.Errorf("failed to create topic: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get topic id: %v", err)
		}
		topic.ID = id
		topic.Name = name
		return &topic, nil
	}

	err = DB.QueryRow("INSERT INTO topics (name) VALUES ($1) RETURNING id", name).Scan(&topic.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic: %v", err)
	}
	topic.Name = name
	return &topic, nil
}

// GetAll returns all topics
func (r *TopicRepository) GetAll() ([]models.Topic, error) {
	var topics []models.Topic
	err := DB.Select(&topics, "SELECT * FROM topics ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %v", err)
	}
	return topics, nil
}
