package main

import (
	"context"
	"log"
	"time"

	"github.com/TechXplorers1/comagend-website/internal/blog"
	"github.com/TechXplorers1/comagend-website/internal/config"
	"github.com/TechXplorers1/comagend-website/internal/db"
	"github.com/TechXplorers1/comagend-website/internal/programs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type seedProgram struct {
	Title       string
	Category    string
	Description string
	Image       string
}

type seedPost struct {
	Title       string
	Category    string
	Excerpt     string
	Content     string
	ReadTime    int
	PublishedAt string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	seedPrograms := []seedProgram{
		{
			Title:       "Women's Economic Empowerment",
			Category:    "Empowerment",
			Description: "Supporting women to start and grow small businesses, access savings and credit, and build the confidence to participate in decision-making at home and in the community.",
			Image:       "https://images.comagend.org/programs/women-empowerment.png",
		},
		{
			Title:       "Youth Development & Education",
			Category:    "Education",
			Description: "Investing in the next generation through tutoring, life-skills training, and mentorship so young people stay in school and transition into decent work.",
			Image:       "https://images.comagend.org/programs/youth-development.png",
		},
		{
			Title:       "Community Health Initiatives",
			Category:    "Health",
			Description: "Training community health volunteers to provide essential healthcare education and services in underserved areas.",
			Image:       "https://images.comagend.org/programs/community-health.png",
		},
	}

	seedPosts := []seedPost{
		{
			Title:    "Empowering Women through Rural Education Programs",
			Category: "Education",
			Excerpt:  "Our rural education initiative is unlocking opportunities for young women by providing access to quality learning...",
			Content: "Access to education transforms lives, especially for women in rural areas.\n\n" +
				"Our program focuses on adult literacy classes, digital skill training, and scholarships for girls.\n\n" +
				"These women are now running small businesses, joining local councils, and inspiring others to dream bigger.\n\n" +
				"This initiative will be extended to 3 more villages in the coming months.",
			ReadTime:    5,
			PublishedAt: "2025-02-10T10:00:00Z",
		},
		{
			Title:    "Health Camps Reached 4,200 Families Last Month",
			Category: "Health",
			Excerpt:  "Mobile health camps are bringing critical medical services to remote communities...",
			Content: "In remote regions where hospitals are far away, our mobile health camps are a lifesaver.\n\n" +
				"Last month alone: 4,200 families served, 800 children vaccinated, 350 prenatal checkups.\n\n" +
				"Our next goal: provide basic medical insurance to 1,000 families.",
			ReadTime:    4,
			PublishedAt: "2025-02-05T08:00:00Z",
		},
		{
			Title:    "Youth Leadership Program Expands Nationwide",
			Category: "Youth",
			Excerpt:  "The youth leadership initiative is now active in 12 districts with over 600 participants...",
			Content: "Tomorrow's leaders are being shaped today.\n\n" +
				"The Youth Leadership Program trains students in public speaking, community organizing, problem-solving, and entrepreneurship.\n\n" +
				"65% of participants have already launched local initiatives like clean water projects, tutoring centers, and youth clubs.",
			ReadTime:    3,
			PublishedAt: "2025-02-01T07:30:00Z",
		},
	}

	now := time.Now().In(cfg.Timezone)

	for _, sp := range seedPrograms {
		count, err := cols.Programs.CountDocuments(ctx, bson.M{"title": sp.Title})
		if err != nil {
			log.Fatal(err)
		}
		if count > 0 {
			log.Printf("program exists, skipping: %s", sp.Title)
			continue
		}
		item := programs.Program{
			ID:          primitive.NewObjectID().Hex(),
			Title:       sp.Title,
			Category:    sp.Category,
			Description: sp.Description,
			Image:       sp.Image,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := cols.Programs.InsertOne(ctx, item); err != nil {
			log.Fatal(err)
		}
		log.Printf("seeded program: %s", sp.Title)
	}

	for _, sp := range seedPosts {
		count, err := cols.BlogPosts.CountDocuments(ctx, bson.M{"title": sp.Title})
		if err != nil {
			log.Fatal(err)
		}
		if count > 0 {
			log.Printf("post exists, skipping: %s", sp.Title)
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, sp.PublishedAt)
		if err != nil {
			log.Fatal(err)
		}
		post := blog.Post{
			ID:          primitive.NewObjectID().Hex(),
			Title:       sp.Title,
			Category:    sp.Category,
			Excerpt:     sp.Excerpt,
			Content:     sp.Content,
			ReadTime:    sp.ReadTime,
			PublishedAt: publishedAt,
		}
		if _, err := cols.BlogPosts.InsertOne(ctx, post); err != nil {
			log.Fatal(err)
		}
		log.Printf("seeded post: %s", sp.Title)
	}
}
