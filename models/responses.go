package models

// UserResponse wraps the account record returned by GET /core/v4/users.
type UserResponse struct {
	Code int  `json:"Code"`
	User User `json:"User"`
}

// AddressesResponse wraps the address list returned by
// GET /core/v4/addresses.
type AddressesResponse struct {
	Code      int       `json:"Code"`
	Addresses []Address `json:"Addresses"`
}

// KeySaltsResponse wraps the key salts returned by GET /core/v4/keys/salts.
type KeySaltsResponse struct {
	Code     int       `json:"Code"`
	KeySalts []KeySalt `json:"KeySalts"`
}

// VolumesResponse wraps the volume list returned by GET /drive/volumes.
type VolumesResponse struct {
	Code    int      `json:"Code"`
	Volumes []Volume `json:"Volumes"`
}

// LinkResponse wraps a single link.
type LinkResponse struct {
	Code int  `json:"Code"`
	Link Link `json:"Link"`
}

// LinksResponse wraps one page of folder children.
type LinksResponse struct {
	Code  int    `json:"Code"`
	Links []Link `json:"Links"`
}

// FolderResponse is returned by folder creation.
type FolderResponse struct {
	Code   int         `json:"Code"`
	Folder CreatedNode `json:"Folder"`
}

// FileResponse is returned by file creation.
type FileResponse struct {
	Code int         `json:"Code"`
	File CreatedNode `json:"File"`
}

// BlockUploadResponse lists the upload destinations in request order.
type BlockUploadResponse struct {
	Code        int               `json:"Code"`
	UploadLinks []BlockUploadLink `json:"UploadLinks"`
}

// RevisionResponse wraps one page of a revision.
type RevisionResponse struct {
	Code     int      `json:"Code"`
	Revision Revision `json:"Revision"`
}

// RefreshRequest renews an access token.
type RefreshRequest struct {
	UID          string `json:"UID"`
	RefreshToken string `json:"RefreshToken"`
	ResponseType string `json:"ResponseType"`
	GrantType    string `json:"GrantType"`
	RedirectURI  string `json:"RedirectURI"`
}

// RefreshResponse carries the renewed session tokens.
type RefreshResponse struct {
	Code         int    `json:"Code"`
	UID          string `json:"UID"`
	AccessToken  string `json:"AccessToken"`
	RefreshToken string `json:"RefreshToken"`
}
