package model

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&TrainerApplication{},
		&Subscription{},
		&AdminBalance{},
		&ForumPost{},
		&VoteRecord{},
		&Voter{},
		&NewsletterSubscriber{},
		&FitnessClass{},
	}
}
