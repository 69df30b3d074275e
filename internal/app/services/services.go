package services

// Services defined in this package:
// - AuthService: registration, login and the current session
// - UserService: profiles and a user's posts
// - PostService: posts, topics and resources of a post, comments, likes, bookmarks
// - TopicService: the topic taxonomy
// - EventService: calendar events
// - ConnectionService: connection requests between users
// - NotificationService: notifications and their live push
// - SearchService: substring search over posts, users and topics
// - LearningPathService: learning paths, steps and per-user progress
