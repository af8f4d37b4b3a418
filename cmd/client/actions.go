package main

import (
	"github.com/atinyakov/postboard/internal/binder"
	"github.com/spf13/cobra"
)

func (a *app) deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user or a post",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "user <id>",
			Short: "Delete a user account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.run(cmd.Context(), binder.Event{Trigger: binder.DeleteUser, Rel: args[0]}); err != nil {
					return err
				}
				// Only the owner can delete an account, so the saved
				// session now belongs to a user that no longer exists.
				return a.forgetSession()
			},
		},
		&cobra.Command{
			Use:   "post <id>",
			Short: "Delete a post",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), binder.Event{Trigger: binder.DeletePost, Rel: args[0]})
			},
		},
	)
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a user or a post",
	}

	var name, email, password string
	user := &cobra.Command{
		Use:   "user <id>",
		Short: "Update a user's name, email and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := binder.Fields{
				binder.UserIDField:       args[0],
				binder.UserNameField:     name,
				binder.UserEmailField:    email,
				binder.UserPasswordField: password,
			}
			return a.run(cmd.Context(), binder.Event{Trigger: binder.UserEdit, Doc: doc})
		},
	}
	user.Flags().StringVar(&name, "name", "", "display name")
	user.Flags().StringVar(&email, "email", "", "email address")
	user.Flags().StringVar(&password, "password", "", "new password (empty keeps the current one)")
	_ = user.MarkFlagRequired("name")
	_ = user.MarkFlagRequired("email")

	var title, body string
	post := &cobra.Command{
		Use:   "post <id>",
		Short: "Update a post's title and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := binder.Fields{
				binder.PostIDField:    args[0],
				binder.PostTitleField: title,
				binder.PostBodyField:  body,
			}
			return a.run(cmd.Context(), binder.Event{Trigger: binder.PostEdit, Doc: doc})
		},
	}
	post.Flags().StringVar(&title, "title", "", "post title")
	post.Flags().StringVar(&body, "body", "", "post body (HTML)")
	_ = post.MarkFlagRequired("title")

	cmd.AddCommand(user, post)
	return cmd
}
