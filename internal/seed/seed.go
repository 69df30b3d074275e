package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/znurfzh/ethic-sub000/internal/app/models"
	appRepos "github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/auth"
	"github.com/znurfzh/ethic-sub000/internal/pkg/helpers"
)

// DemoPassword is the password of every seeded account
const DemoPassword = "password123"

// Options controls how demo data is generated
type Options struct {
	// RandomSeed makes the post/topic associations reproducible
	RandomSeed int64
	// HashPasswords stores bcrypt hashes instead of the plain demo password
	HashPasswords bool
}

// CreateDefaultData fills an empty store with demo users, topics, posts, events,
// resources, learning paths and notifications. It only uses the repository API
// request handlers use. Failures are collected and returned together; the rest
// of the data is still created.
func CreateDefaultData(ctx context.Context, storage appRepos.Storage, lgr zerolog.Logger, opts Options) error {
	users, err := storage.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("error checking existing users: %w", err)
	}
	if len(users) > 0 {
		lgr.Info().Int("users", len(users)).Msg("Store already has data, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default data...")
	s := &seeder{
		storage: storage,
		lgr:     lgr,
		rng:     rand.New(rand.NewPCG(uint64(opts.RandomSeed), uint64(opts.RandomSeed)^0x9e3779b97f4a7c15)),
		now:     time.Now(),
	}

	password := DemoPassword
	if opts.HashPasswords {
		hashed, err := auth.HashPassword(DemoPassword)
		if err != nil {
			return fmt.Errorf("error hashing demo password: %w", err)
		}
		password = hashed
	}

	s.createUsers(ctx, password)
	s.createTopics(ctx)
	s.createPosts(ctx)
	s.createResources(ctx)
	s.createEvents(ctx)
	s.createLearningPaths(ctx)
	s.createNotifications(ctx)

	lgr.Info().
		Int("users", len(s.users)).
		Int("topics", len(s.topics)).
		Int("posts", len(s.posts)).
		Int("learningPaths", len(s.paths)).
		Msg("Default data creation finished.")
	return s.err
}

type seeder struct {
	storage appRepos.Storage
	lgr     zerolog.Logger
	rng     *rand.Rand
	now     time.Time
	err     error

	users     []*appModels.User
	topics    []*appModels.Topic
	posts     []*appModels.Post
	resources []*appModels.Resource
	events    []*appModels.Event
	paths     []*appModels.LearningPath
}

func (s *seeder) fail(err error, msg string) {
	s.lgr.Error().Err(err).Msg(msg)
	s.err = errors.Join(s.err, fmt.Errorf("%s: %w", msg, err))
}

func (s *seeder) createUsers(ctx context.Context, password string) {
	demo := []appModels.User{
		{
			Username:       "alice",
			DisplayName:    "Alice Johnson",
			Email:          "alice@ethic.edu",
			UserType:       appModels.UserTypeStudent,
			Bio:            helpers.StringPtr("Educational technology student interested in adaptive learning."),
			GraduationYear: helpers.IntPtr(2026),
		},
		{
			Username:       "bob",
			DisplayName:    "Bob Martinez",
			Email:          "bob@ethic.edu",
			UserType:       appModels.UserTypeAlumni,
			Bio:            helpers.StringPtr("Instructional designer and EdTech alumnus."),
			JobTitle:       helpers.StringPtr("Instructional Designer"),
			Organization:   helpers.StringPtr("LearnWell"),
			GraduationYear: helpers.IntPtr(2021),
		},
		{
			Username:     "drchen",
			DisplayName:  "Dr. Mei Chen",
			Email:        "mei.chen@ethic.edu",
			UserType:     appModels.UserTypeFaculty,
			Bio:          helpers.StringPtr("Professor of Learning Sciences."),
			JobTitle:     helpers.StringPtr("Professor"),
			Organization: helpers.StringPtr("ETHIC University"),
		},
		{
			Username:     "sam.pro",
			DisplayName:  "Sam Patel",
			Email:        "sam.patel@edtechco.com",
			UserType:     appModels.UserTypeProfessional,
			Bio:          helpers.StringPtr("Product manager building classroom tools."),
			JobTitle:     helpers.StringPtr("Product Manager"),
			Organization: helpers.StringPtr("EdTechCo"),
		},
		{
			Username:       "lina",
			DisplayName:    "Lina Okafor",
			Email:          "lina@ethic.edu",
			UserType:       appModels.UserTypeStudent,
			Bio:            helpers.StringPtr("Researching gamification in online courses."),
			GraduationYear: helpers.IntPtr(2025),
		},
	}

	for i := range demo {
		u := demo[i]
		u.Password = password
		created, err := s.storage.CreateUser(ctx, &u)
		if err != nil {
			s.fail(err, "Error creating user "+u.Username)
			continue
		}
		s.users = append(s.users, created)
	}
}

// author returns the i-th seeded user that is allowed to create content
func (s *seeder) author(i int) *appModels.User {
	var creators []*appModels.User
	for _, u := range s.users {
		if !u.IsProfessional() {
			creators = append(creators, u)
		}
	}
	if len(creators) == 0 {
		return nil
	}
	return creators[i%len(creators)]
}

func (s *seeder) createTopics(ctx context.Context) {
	demo := []appModels.Topic{
		{Name: "EdTech", Color: "#6366f1"},
		{Name: "Instructional Design", Color: "#10b981"},
		{Name: "AI in Education", Color: "#f59e0b"},
		{Name: "Online Learning", Color: "#3b82f6"},
		{Name: "Career", Color: "#ef4444"},
		{Name: "Research", Color: "#8b5cf6"},
	}

	for i := range demo {
		created, err := s.storage.CreateTopic(ctx, &demo[i])
		if err != nil {
			s.fail(err, "Error creating topic "+demo[i].Name)
			continue
		}
		s.topics = append(s.topics, created)
	}
}

func (s *seeder) createPosts(ctx context.Context) {
	demo := []appModels.Post{
		{
			Title:    "Getting started with EdTech research",
			Content:  "A short reading list for anyone starting out in edtech research.",
			PostType: appModels.PostTypeArticle,
		},
		{
			Title:    "How do you evaluate a learning management system?",
			Content:  "Our department is picking a new LMS. Which criteria matter most to you?",
			PostType: appModels.PostTypeQuestion,
		},
		{
			Title:    "Designing for accessibility from day one",
			Content:  "Notes from a workshop on universal design for learning.",
			PostType: appModels.PostTypeDiscussion,
		},
		{
			Title:    "Free dataset of MOOC engagement logs",
			Content:  "Sharing an anonymized dataset useful for learning analytics projects.",
			PostType: appModels.PostTypeResource,
		},
		{
			Title:    "Looking for a mentor in instructional design",
			Content:  "Final year student hoping to learn from alumni working in the field.",
			PostType: appModels.PostTypeMentorship,
		},
		{
			Title:    "Chatbots as teaching assistants",
			Content:  "What we learned running an AI tutor in an intro programming course.",
			PostType: appModels.PostTypeArticle,
		},
	}

	for i := range demo {
		author := s.author(i)
		if author == nil {
			s.fail(errors.New("no user may author posts"), "Error creating posts")
			return
		}
		p := demo[i]
		p.AuthorID = author.ID
		created, err := s.storage.CreatePost(ctx, &p)
		if err != nil {
			s.fail(err, "Error creating post")
			continue
		}
		s.posts = append(s.posts, created)
		s.tagPost(ctx, created)
	}
}

// tagPost links the post to one to three distinct random topics
func (s *seeder) tagPost(ctx context.Context, post *appModels.Post) {
	if len(s.topics) == 0 {
		return
	}
	n := 1 + s.rng.IntN(min(3, len(s.topics)))
	for _, idx := range s.rng.Perm(len(s.topics))[:n] {
		_, err := s.storage.CreatePostTopic(ctx, &appModels.PostTopic{PostID: post.ID, TopicID: s.topics[idx].ID})
		if err != nil {
			s.fail(err, "Error linking post to topic")
		}
	}
}

func (s *seeder) createResources(ctx context.Context) {
	if len(s.posts) < 4 {
		return
	}
	demo := []appModels.Resource{
		{
			PostID:          s.posts[0].ID,
			Title:           "Learning Sciences reading list",
			Type:            "document",
			ResourceType:    helpers.StringPtr("reading"),
			URL:             helpers.StringPtr("https://example.org/learning-sciences-reading-list"),
			Description:     helpers.StringPtr("Foundational papers, grouped by theme."),
			DifficultyLevel: helpers.StringPtr("beginner"),
			EstimatedTime:   helpers.StringPtr("5 hours"),
			TargetAudience:  helpers.StringPtr("students"),
		},
		{
			PostID:          s.posts[3].ID,
			Title:           "MOOC engagement dataset",
			Type:            "dataset",
			ResourceType:    helpers.StringPtr("data"),
			URL:             helpers.StringPtr("https://example.org/mooc-engagement"),
			Description:     helpers.StringPtr("Clickstream logs from 12 courses."),
			DifficultyLevel: helpers.StringPtr("intermediate"),
			EstimatedTime:   helpers.StringPtr("2 hours"),
			TargetAudience:  helpers.StringPtr("researchers"),
		},
		{
			PostID:          s.posts[2].ID,
			Title:           "UDL guidelines",
			Type:            "link",
			URL:             helpers.StringPtr("https://udlguidelines.cast.org"),
			DifficultyLevel: helpers.StringPtr("beginner"),
		},
	}

	for i := range demo {
		created, err := s.storage.CreateResource(ctx, &demo[i])
		if err != nil {
			s.fail(err, "Error creating resource "+demo[i].Title)
			continue
		}
		s.resources = append(s.resources, created)
	}
}

func (s *seeder) createEvents(ctx context.Context) {
	creator := s.author(0)
	if creator == nil {
		return
	}
	day := 24 * time.Hour
	demo := []appModels.Event{
		{
			Title:       "EdTech Career Fair",
			Description: "Meet companies hiring instructional designers and learning engineers.",
			EventDate:   s.now.Add(14 * day),
			Color:       "#6366f1",
			Location:    helpers.StringPtr("Main Hall"),
		},
		{
			Title:            "AI in the Classroom Webinar",
			Description:      "Panel on responsible use of generative AI in teaching.",
			EventDate:        s.now.Add(7 * day),
			Color:            "#f59e0b",
			RegistrationLink: helpers.StringPtr("https://example.org/ai-webinar"),
		},
		{
			Title:       "Alumni Mentoring Night",
			Description: "Small group mentoring with program alumni.",
			EventDate:   s.now.Add(21 * day),
			Color:       "#10b981",
			Location:    helpers.StringPtr("Room 204"),
		},
	}

	for i := range demo {
		e := demo[i]
		e.CreatedBy = creator.ID
		created, err := s.storage.CreateEvent(ctx, &e)
		if err != nil {
			s.fail(err, "Error creating event "+e.Title)
			continue
		}
		s.events = append(s.events, created)
	}
}

func (s *seeder) createLearningPaths(ctx context.Context) {
	demo := []appModels.LearningPath{
		{
			Title:                   "Foundations of Educational Technology",
			Description:             "Core ideas every EdTech practitioner should know.",
			Difficulty:              "beginner",
			EstimatedTimeToComplete: helpers.StringPtr("4 weeks"),
		},
		{
			Title:                   "Designing Online Courses",
			Description:             "From learning objectives to a published course.",
			Difficulty:              "intermediate",
			EstimatedTimeToComplete: helpers.StringPtr("6 weeks"),
		},
		{
			Title:       "Learning Analytics in Practice",
			Description: "Use data to improve teaching and learning.",
			Difficulty:  "advanced",
		},
	}

	for i := range demo {
		creator := s.author(i + 1)
		if creator == nil {
			return
		}
		p := demo[i]
		p.CreatedBy = creator.ID
		created, err := s.storage.CreateLearningPath(ctx, &p)
		if err != nil {
			s.fail(err, "Error creating learning path "+p.Title)
			continue
		}
		s.paths = append(s.paths, created)
	}

	// only the first two paths get steps
	for i, path := range s.paths {
		if i >= 2 {
			break
		}
		for order, step := range s.stepsFor(i) {
			step.LearningPathID = path.ID
			step.Order = order + 1
			if _, err := s.storage.CreateLearningPathStep(ctx, &step); err != nil {
				s.fail(err, "Error creating learning path step")
			}
		}
	}
}

func (s *seeder) stepsFor(pathIndex int) []appModels.LearningPathStep {
	content := func(i int, kind string) appModels.StepContent {
		switch kind {
		case "resource":
			if i < len(s.resources) {
				return appModels.ResourceContent(s.resources[i].ID)
			}
		case "post":
			if i < len(s.posts) {
				return appModels.PostContent(s.posts[i].ID)
			}
		}
		return appModels.StepContent{}
	}

	if pathIndex == 0 {
		return []appModels.LearningPathStep{
			{Title: "Read the essentials", Description: "Start with the curated reading list.", Content: content(0, "resource")},
			{Title: "Join the discussion", Description: "Share what surprised you.", Content: content(0, "post")},
			{Title: "Explore the UDL guidelines", Description: "Skim the three principles.", Content: appModels.ExternalContent("https://udlguidelines.cast.org")},
		}
	}
	return []appModels.LearningPathStep{
		{Title: "Write learning objectives", Description: "Draft measurable objectives for one module."},
		{Title: "Plan for accessibility", Description: "Apply universal design from the start.", Content: content(2, "post")},
		{Title: "Analyse engagement", Description: "Look at real course logs.", Content: content(1, "resource")},
	}
}

func (s *seeder) createNotifications(ctx context.Context) {
	if len(s.users) < 2 {
		return
	}
	for _, u := range s.users {
		_, err := s.storage.CreateNotification(ctx, &appModels.Notification{
			UserID:  u.ID,
			Type:    appModels.NotificationTypeSystem,
			Content: "Welcome to ETHIC, " + u.DisplayName + "!",
		})
		if err != nil {
			s.fail(err, "Error creating welcome notification")
		}
	}

	if len(s.posts) > 0 {
		post := s.posts[0]
		liker := s.users[1]
		if liker.ID == post.AuthorID {
			liker = s.users[0]
		}
		sourceType := appModels.SourceTypePost
		_, err := s.storage.CreateNotification(ctx, &appModels.Notification{
			UserID:     post.AuthorID,
			Type:       appModels.NotificationTypeLike,
			Content:    liker.DisplayName + " liked your post",
			SourceID:   helpers.Int64Ptr(post.ID),
			SourceType: &sourceType,
		})
		if err != nil {
			s.fail(err, "Error creating like notification")
		}
	}

	if len(s.events) > 0 {
		event := s.events[0]
		sourceType := appModels.SourceTypeEvent
		_, err := s.storage.CreateNotification(ctx, &appModels.Notification{
			UserID:     s.users[0].ID,
			Type:       appModels.NotificationTypeEvent,
			Content:    event.Title + " is coming up soon",
			SourceID:   helpers.Int64Ptr(event.ID),
			SourceType: &sourceType,
		})
		if err != nil {
			s.fail(err, "Error creating event notification")
		}
	}
}
