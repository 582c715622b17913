// Package snoo is a Go client for reddit's JSON API.
//
// It exposes reddit's typed things (users, subreddits, posts, comments),
// reads listings through cursor-based pagination, and performs authenticated
// write actions (vote, reply, delete, compose, subscribe). Every outbound
// call goes through a single request engine that spaces requests at least
// two seconds apart, attaches session credentials to mutating calls, and
// surfaces API-reported failures as structured errors.
//
// Basic usage:
//
//	client, err := snoo.NewClient(&snoo.Config{
//		UserAgent: "myapp/1.0 by u/myname",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	posts, err := client.Subreddit("golang").Posts(ctx, 25)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Reads work without authentication. Write actions need a session:
//
//	if err := client.Login(ctx, "myname", "hunter2", false); err != nil {
//		log.Fatal(err)
//	}
//	err = client.Upvote(ctx, posts[0])
//
// A successful login is persisted to the auth file, so later runs adopt the
// session without a network call until it is force-refreshed.
package snoo
