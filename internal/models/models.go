package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationPrefs controls which events a user wants to be told about.
type NotificationPrefs struct {
	Comments     bool `bson:"comentarios" json:"comentarios"`
	Likes        bool `bson:"likes" json:"likes"`
	NewFollowers bool `bson:"nuevosSeguidores" json:"nuevosSeguidores"`
}

// User represents an account in the system
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username      string               `bson:"username" json:"username"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password,omitempty" json:"-"`
	Provider      string               `bson:"provider" json:"provider"`
	ProfilePhoto  string               `bson:"fotoPerfil" json:"fotoPerfil"`
	BannerPhoto   string               `bson:"fotoBanner" json:"fotoBanner"`
	Bio           string               `bson:"bio" json:"bio"`
	City          string               `bson:"ciudad" json:"ciudad"`
	Country       string               `bson:"pais" json:"pais"`
	FavoriteStyle string               `bson:"estiloFavorito" json:"estiloFavorito"`
	PublicProfile bool                 `bson:"perfilPublico" json:"perfilPublico"`
	Notifications NotificationPrefs    `bson:"notificaciones" json:"notificaciones"`
	Verified      bool                 `bson:"isVerified" json:"isVerified"`
	RefreshToken  string               `bson:"refreshToken,omitempty" json:"-"`
	ResetToken    string               `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetExpires  *time.Time           `bson:"resetPasswordExpires,omitempty" json:"-"`
	Followers     []primitive.ObjectID `bson:"followers" json:"followers"`
	Following     []primitive.ObjectID `bson:"following" json:"following"`
	Role          string               `bson:"rol" json:"rol"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

// Reply is a response nested under a beer review.
type Reply struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID   `bson:"usuario" json:"usuario"`
	Comment   string               `bson:"comentario" json:"comentario"`
	CreatedAt time.Time            `bson:"creadoEn" json:"creadoEn"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Video     string               `bson:"video" json:"video"`
}

// Review is a free-text review embedded in a beer document.
type Review struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID   `bson:"usuario" json:"usuario"`
	Comment   string               `bson:"comentario" json:"comentario"`
	Score     int                  `bson:"calificacion" json:"calificacion"`
	CreatedAt time.Time            `bson:"creadoEn" json:"creadoEn"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Video     string               `bson:"video" json:"video"`
	Replies   []Reply              `bson:"respuestas" json:"respuestas"`
}

// Rating is a single star rating in a beer's one-per-user ledger.
// Ratings are kept apart from reviews: a user may write many reviews
// but rate a beer only once.
type Rating struct {
	UserID primitive.ObjectID `bson:"usuario" json:"usuario"`
	Value  int                `bson:"valor" json:"valor"`
}

// Beer is a rated entity owning embedded reviews, replies and likes.
// Version is bumped on every write and used for compare-and-swap saves.
type Beer struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Version       int64                `bson:"version" json:"-"`
	Name          string               `bson:"nombre" json:"nombre"`
	Brewery       string               `bson:"cerveceria" json:"cerveceria"`
	Style         string               `bson:"tipo" json:"tipo"`
	ABV           float64              `bson:"abv" json:"abv"`
	Description   string               `bson:"descripcion" json:"descripcion"`
	Image         string               `bson:"imagen" json:"imagen"`
	Video         string               `bson:"video" json:"video"`
	UserID        primitive.ObjectID   `bson:"usuario" json:"usuario"`
	Likes         []primitive.ObjectID `bson:"likes" json:"likes"`
	Reviews       []Review             `bson:"reviews" json:"reviews"`
	Ratings       []Rating             `bson:"ratings" json:"ratings"`
	AverageRating float64              `bson:"calificacionPromedio" json:"calificacionPromedio"`
	BeerOfDay     bool                 `bson:"esCervezaDelDia" json:"esCervezaDelDia"`
	LastSelection *time.Time           `bson:"ultimaSeleccion,omitempty" json:"ultimaSeleccion,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Address is the structured street address of a location.
type Address struct {
	Street     string `bson:"calle" json:"calle"`
	City       string `bson:"ciudad" json:"ciudad"`
	State      string `bson:"estado" json:"estado"`
	Country    string `bson:"pais" json:"pais"`
	PostalCode string `bson:"codigoPostal,omitempty" json:"codigoPostal,omitempty"`
}

// LocationReview is a scored comment embedded in a location document.
// Unlike beer ratings there is no one-per-user ledger here; every
// comment's score feeds the location average.
type LocationReview struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID  primitive.ObjectID `bson:"usuario" json:"usuario"`
	Comment string             `bson:"comentario" json:"comentario"`
	Score   int                `bson:"puntuacion" json:"puntuacion"`
	Date    time.Time          `bson:"fecha" json:"fecha"`
}

// Location is a bar or brewery venue with embedded scored comments.
type Location struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Version       int64                `bson:"version" json:"-"`
	Name          string               `bson:"nombre" json:"nombre"`
	Description   string               `bson:"descripcion" json:"descripcion"`
	Address       Address              `bson:"direccion" json:"direccion"`
	Phone         string               `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Website       string               `bson:"sitioWeb,omitempty" json:"sitioWeb,omitempty"`
	ContactEmail  string               `bson:"emailContacto,omitempty" json:"emailContacto,omitempty"`
	Image         string               `bson:"imagen" json:"imagen"`
	Gallery       []string             `bson:"galeriaImagenes" json:"galeriaImagenes"`
	BeerSelection []primitive.ObjectID `bson:"seleccionCervezas" json:"seleccionCervezas"`
	Comments      []LocationReview     `bson:"comentarios" json:"comentarios"`
	AverageRating float64              `bson:"calificacionPromedio" json:"calificacionPromedio"`
	Favorites     []primitive.ObjectID `bson:"favoritos" json:"favoritos"`
	Services      []string             `bson:"servicios" json:"servicios"`
	PetFriendly   bool                 `bson:"esPetFriendly" json:"esPetFriendly"`
	LiveMusic     bool                 `bson:"tieneMusicaEnVivo" json:"tieneMusicaEnVivo"`
	Terrace       bool                 `bson:"cuentaConTerraza" json:"cuentaConTerraza"`
	Parking       bool                 `bson:"tieneEstacionamiento" json:"tieneEstacionamiento"`
	Visits        int                  `bson:"visitas" json:"visitas"`
	Featured      bool                 `bson:"esDestacado" json:"esDestacado"`
	UserID        primitive.ObjectID   `bson:"usuario" json:"usuario"`
	CreatedAt     time.Time            `bson:"creadoEn" json:"creadoEn"`
}

// ReactionBucket keeps one named reaction counter and the users behind
// it. Count must always equal len(Users).
type ReactionBucket struct {
	Count int                  `bson:"count" json:"count"`
	Users []primitive.ObjectID `bson:"usuarios" json:"usuarios"`
}

// Reactions groups the three reaction buckets a post carries.
type Reactions struct {
	Cheers      ReactionBucket `bson:"salud" json:"salud"`
	Recommended ReactionBucket `bson:"recomendado" json:"recomendado"`
	Like        ReactionBucket `bson:"meGusta" json:"meGusta"`
}

// Post is a feed entry with typed reaction counters and external comments.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Version   int64                `bson:"version" json:"-"`
	UserID    primitive.ObjectID   `bson:"usuario" json:"usuario"`
	Title     string               `bson:"titulo" json:"titulo"`
	Content   string               `bson:"contenido" json:"contenido"`
	Images    []string             `bson:"imagenes" json:"imagenes"`
	Visits    int                  `bson:"visitas" json:"visitas"`
	ViewedBy  []primitive.ObjectID `bson:"vistoPor" json:"vistoPor"`
	Reactions Reactions            `bson:"reacciones" json:"reacciones"`
	Comments  []primitive.ObjectID `bson:"comentarios" json:"comentarios"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Comment lives in its own collection and references its post.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Comment string             `bson:"comentario" json:"comentario"`
	UserID  primitive.ObjectID `bson:"usuario" json:"usuario"`
	PostID  primitive.ObjectID `bson:"post" json:"post"`
	Date    time.Time          `bson:"fecha" json:"fecha"`
}

// RevokedToken is a logged-out access token held until it expires.
type RevokedToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Token     string             `bson:"token" json:"token"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}
