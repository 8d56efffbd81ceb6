package domain

// SamplePosts returns the demo signals shown before the first discovery run.
// A fresh slice is returned on every call.
func SamplePosts() []Post {
	return []Post{
		{
			ID:           "1",
			AuthorHandle: "@startup_founder",
			AuthorName:   "Alex Rivers",
			AvatarURL:    "https://picsum.photos/seed/alex/100/100",
			Content:      "Looking for a specialized CRM that handles high-volume B2B outreach without the bloat of Salesforce. Any recommendations for lean teams? #SaaS #Growth",
			Likes:        42,
			Replies:      12,
			Timestamp:    "2h ago",
			Type:         CategoryLeads,
		},
		{
			ID:           "2",
			AuthorHandle: "@marketing_wiz",
			AuthorName:   "Sarah Chen",
			AvatarURL:    "https://picsum.photos/seed/sarah/100/100",
			Content:      "1/12: How we scaled our search discovery tool to 10k users in 3 months with 0 spend. A thread on intent-based marketing.",
			Likes:        850,
			Replies:      45,
			Timestamp:    "5h ago",
			Type:         CategoryThreads,
		},
		{
			ID:           "3",
			AuthorHandle: "@dev_insights",
			AuthorName:   "Jordan Smith",
			AvatarURL:    "https://picsum.photos/seed/jordan/100/100",
			Content:      "Just published: 'The Future of Real-time Search Infrastructure'. Read it here: signal.com/blog/future-search",
			Likes:        120,
			Replies:      8,
			Timestamp:    "1d ago",
			Type:         CategoryLinks,
		},
		{
			ID:           "4",
			AuthorHandle: "@product_guy",
			AuthorName:   "David Miller",
			AvatarURL:    "https://picsum.photos/seed/david/100/100",
			Content:      "Does anyone know a tool that tracks 'buying intent' keywords on X? Looking for something like Attio but for social signals.",
			Likes:        15,
			Replies:      32,
			Timestamp:    "4h ago",
			Type:         CategoryLeads,
		},
		{
			ID:           "5",
			AuthorHandle: "@video_pro",
			AuthorName:   "Marcus Vlogs",
			AvatarURL:    "https://picsum.photos/seed/marcus/100/100",
			Content:      "Check out my latest breakdown of the new X video algorithms. Long-form video is officially taking over the timeline! [Video: 12:45]",
			Likes:        340,
			Replies:      28,
			Timestamp:    "3h ago",
			Type:         CategoryVideo,
		},
		{
			ID:           "6",
			AuthorHandle: "@short_form_king",
			AuthorName:   "Leo Sparks",
			AvatarURL:    "https://picsum.photos/seed/leo/100/100",
			Content:      "3 tips to hook your audience in the first 3 seconds of your X videos. #VideoMarketing #GrowthHacking [Video: 0:45]",
			Likes:        1200,
			Replies:      156,
			Timestamp:    "30m ago",
			Type:         CategoryVideo,
		},
	}
}
