package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"promptquest/internal/config"
	"promptquest/internal/model"
	"promptquest/internal/repository"
)

func main() {
	cfg := config.Load()
	def := cfg.Threshold

	csvPath := flag.String("csv", "data/prompts.csv", "authoring CSV (category,name,prompt,difficulty,hints,user,assistant)")
	out := flag.String("out", "", "write a YAML level pack to this path")
	toMongo := flag.Bool("mongo", false, "upsert levels into MongoDB (MONGO_URI, MONGO_DB)")
	base := flag.Float64("base", def.Base, "pass threshold at difficulty 0")
	step := flag.Float64("step", def.Step, "threshold decrease per difficulty point")
	floor := flag.Float64("floor", def.Floor, "minimum pass threshold")
	flag.Parse()

	if *out == "" && !*toMongo {
		log.Fatal("nothing to do: pass -out and/or -mongo")
	}

	policy := model.ThresholdPolicy{Base: *base, Step: *step, Floor: *floor}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	levels, err := parseLevels(f, policy)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", *csvPath, err)
	}

	if *out != "" {
		if err := repository.WriteLevelPack(*out, &repository.LevelPack{Policy: &policy, Levels: levels}); err != nil {
			log.Fatalf("Failed to write level pack: %v", err)
		}
		log.Printf("Wrote %d levels to %s", len(levels), *out)
	}

	if *toMongo {
		seedMongo(cfg.MongoURI, cfg.MongoDB, levels)
	}
}

func seedMongo(mongoURI, dbName string, levels []model.Level) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewLevelRepo(client.Database(dbName))
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	for i := range levels {
		if err := repo.Upsert(ctx, &levels[i]); err != nil {
			log.Fatalf("Failed to upsert level %d: %v", levels[i].Number, err)
		}
	}
	log.Printf("Upserted %d levels into %s", len(levels), dbName)
}
