package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"devconnect/internal/github"
	"devconnect/internal/models"
)

const dateLayout = "2006-01-02"

func dateRange(from time.Time, to *time.Time, current bool) string {
	end := "Now"
	if !current && to != nil {
		end = to.Format(dateLayout)
	}
	return from.Format(dateLayout) + " - " + end
}

func writeUser(w io.Writer, u *models.User) error {
	_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
	return err
}

func writeProfile(w io.Writer, p *models.Profile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if p.User != nil {
		fmt.Fprintf(tw, "Name:\t%s (user %d)\n", p.User.Name, p.User.ID)
	}
	status := p.Status
	if p.Company != "" {
		status += " at " + p.Company
	}
	fmt.Fprintf(tw, "Status:\t%s\n", status)
	fmt.Fprintf(tw, "Skills:\t%s\n", strings.Join(p.Skills, ", "))
	for _, field := range []struct{ label, value string }{
		{"Location", p.Location},
		{"Website", p.Website},
		{"GitHub", p.GithubUsername},
		{"Bio", p.Bio},
	} {
		if field.value != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", field.label, field.value)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(p.Experience) > 0 {
		fmt.Fprintln(w, "\nExperience:")
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, e := range p.Experience {
			fmt.Fprintf(tw, "  %s\t%s at %s\t%s\n", e.ID, e.Title, e.Company, dateRange(e.From, e.To, e.Current))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(p.Education) > 0 {
		fmt.Fprintln(w, "\nEducation:")
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, e := range p.Education {
			fmt.Fprintf(tw, "  %s\t%s in %s, %s\t%s\n", e.ID, e.Degree, e.FieldOfStudy, e.School, dateRange(e.From, e.To, e.Current))
		}
		return tw.Flush()
	}
	return nil
}

func writeProfiles(w io.Writer, profiles []models.Profile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(w, "No profiles found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tNAME\tSTATUS\tSKILLS")
	for _, p := range profiles {
		var id uint
		var name string
		if p.User != nil {
			id, name = p.User.ID, p.User.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", id, name, p.Status, strings.Join(p.Skills, ", "))
	}
	return tw.Flush()
}

func writeRepos(w io.Writer, repos []github.Repo) error {
	if len(repos) == 0 {
		_, err := fmt.Fprintln(w, "No repositories found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARS\tWATCHERS\tFORKS\tURL")
	for _, r := range repos {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", r.Name, r.Stars, r.Watchers, r.Forks, r.HTMLURL)
	}
	return tw.Flush()
}

func writePost(w io.Writer, p *models.Post) error {
	fmt.Fprintf(w, "#%d %s (%d likes, %d comments)\n  %s\n", p.ID, p.Name, len(p.Likes), len(p.Comments), p.Text)
	for _, c := range p.Comments {
		fmt.Fprintf(w, "    [%d] %s: %s\n", c.ID, c.Name, c.Text)
	}
	return nil
}

func writePosts(w io.Writer, posts []models.Post) error {
	if len(posts) == 0 {
		_, err := fmt.Fprintln(w, "No posts yet")
		return err
	}
	for i := range posts {
		if err := writePost(w, &posts[i]); err != nil {
			return err
		}
	}
	return nil
}
