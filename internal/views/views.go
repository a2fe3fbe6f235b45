// Package views turns application state into printable pages. Every function
// here is pure: no storage, no network, no terminal.
package views

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carpool/internal/geo"
	"github.com/dmitrijs2005/carpool/internal/mapview"
	"github.com/dmitrijs2005/carpool/internal/models"
)

const (
	NotProvided = "Non renseigné"
	UserMissing = "Utilisateur introuvable."
	NoComments  = "Aucun commentaire"
	NoTrips     = "Aucun trajet"
	NotFound    = "Adresse non trouvée"
)

// Page is a title followed by lines of text.
type Page struct {
	Title string
	Lines []string
}

func (p Page) String() string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString("== " + p.Title + " ==\n")
	}
	for _, l := range p.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Page) add(format string, args ...any) {
	p.Lines = append(p.Lines, fmt.Sprintf(format, args...))
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}

func photoLine(photo string) string {
	if photo == "" {
		return "Photo : aucune"
	}
	mime := strings.TrimPrefix(photo, "data:")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "Photo : " + mime
}

// Profile is the logged-in user's home page.
func Profile(u models.User) Page {
	p := Page{Title: "Bienvenue, " + u.FullName()}
	p.Lines = append(p.Lines, photoLine(u.Photo))
	p.add("Email : %s", u.Email)
	p.add("Tél : %s", u.Tel)
	p.add("Domicile : %s", orNotProvided(u.Home))
	p.add("Travail : %s", orNotProvided(u.Work))
	return p
}

// AddressGate is shown instead of every feature until both addresses are set.
func AddressGate(u models.User) Page {
	p := Page{Title: "Complétez vos adresses"}
	p.add("Pour accéder à l'application, vous devez renseigner à la fois votre adresse de domicile et votre adresse de travail.")
	p.add("Domicile : %s", orNotProvided(u.Home))
	p.add("Travail : %s", orNotProvided(u.Work))
	p.add("Utilisez la commande 'addresses' pour les renseigner.")
	return p
}

func tripLine(t models.Trip) string {
	return fmt.Sprintf("%s %s : %s → %s", t.Date, t.Time, t.From, t.To)
}

// History lists the user's own trips in posting order.
func History(trips []models.Trip) Page {
	p := Page{Title: "Historique de mes trajets"}
	if len(trips) == 0 {
		p.Lines = append(p.Lines, NoTrips)
		return p
	}
	for _, t := range trips {
		p.Lines = append(p.Lines, "- "+tripLine(t))
	}
	return p
}

// PublicProfile shows another user's contact details, addresses and the
// comments left on them. A nil user renders the not-found page.
func PublicProfile(email string, u *models.User, comments []models.Comment) Page {
	if u == nil {
		return Page{Lines: []string{UserMissing}}
	}

	p := Page{Title: "Profil de " + u.FullName()}
	p.Lines = append(p.Lines, photoLine(u.Photo))
	p.add("Email : %s", u.Email)
	p.add("Tél : %s", u.Tel)
	p.add("Domicile : %s", orNotProvided(u.Home))
	p.add("Travail : %s", orNotProvided(u.Work))
	p.add("")
	p.add("Commentaires publics")
	if len(comments) == 0 {
		p.Lines = append(p.Lines, NoComments)
		return p
	}
	for _, c := range comments {
		p.add("%s : %s", c.AuthorName, c.Text)
	}
	return p
}

func videoSuffix(id string) string {
	if id == "" {
		return ""
	}
	return " [vidéo " + mapview.EmbedURL(id) + "]"
}

// MapSummary is the text rendering of the trip map: the view, one block per
// marker, the trip lines and the trip list.
func MapSummary(m mapview.RenderModel) Page {
	p := Page{Title: "Carte des trajets disponibles"}

	if m.FitBounds {
		p.add("Vue : ajustée à %s / %s (marge %d px)", m.Bounds.SouthWest, m.Bounds.NorthEast, m.Padding)
	} else {
		p.add("Vue : centre %s, zoom %d", m.Initial.Center, m.Initial.Zoom)
	}
	if m.Tile.Attribution != "" {
		p.add("Fond : %s", m.Tile.Attribution)
	}
	if m.Unresolved > 0 {
		p.add("Adresses non localisées : %d", m.Unresolved)
	}

	p.add("")
	p.add("Points (%d)", len(m.Markers))
	for _, mk := range m.Markers {
		p.add("* %s", mk.Coordinate)
		for _, e := range mk.Entries {
			p.add("    %s (%s) %s%s [profil %s]", e.DisplayName, e.Kind, tripLine(e.Trip), videoSuffix(e.VideoID), e.ProfileEmail)
		}
	}

	p.add("")
	p.add("Trajets tracés (%d)", len(m.Lines))
	for _, l := range m.Lines {
		p.add("    %s", l.Label)
	}

	p.add("")
	p.add("Liste des trajets")
	if len(m.Trips) == 0 {
		p.Lines = append(p.Lines, NoTrips)
	}
	for _, t := range m.Trips {
		p.add("- %s : %s%s [profil %s]", t.DisplayName, tripLine(t.Trip), videoSuffix(t.VideoID), t.ProfileEmail)
	}
	return p
}

// Search renders a located address, or the not-found message for nil.
func Search(r *mapview.SearchResult) Page {
	if r == nil {
		return Page{Lines: []string{NotFound}}
	}
	p := Page{Title: r.Label}
	p.add("%s", r.Query)
	p.add("Position : %s, zoom %d", r.Coordinate, r.Zoom)
	return p
}

// Suggestions lists autocomplete results; an empty list renders nothing.
func Suggestions(list []geo.Suggestion) Page {
	p := Page{}
	for i, s := range list {
		p.add("%d. %s", i+1, s.Label)
	}
	return p
}
