package redisrepo

import "fmt"

const (
	POST_KEY = "post:%s" // <postID>
	ALL_POSTS_KEY = "posts:all"
	PUBLISHED_POSTS_KEY = "posts:published"
	TAG_POSTS_KEY = "posts:tag:%s" // <tag>
	POSTS_KEY_PATTERN = "posts:*"
)

func PostKey(postID string) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func TagPostsKey(tag string) string {
	return fmt.Sprintf(TAG_POSTS_KEY, tag)
}
