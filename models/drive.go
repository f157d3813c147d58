// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LinkType distinguishes folders from files.
type LinkType int

const (
	LinkTypeFolder LinkType = 1
	LinkTypeFile   LinkType = 2
)

// String implements fmt.Stringer.
func (t LinkType) String() string {
	switch t {
	case LinkTypeFolder:
		return "folder"
	case LinkTypeFile:
		return "file"
	default:
		return "unknown"
	}
}

// VolumeStateActive marks a volume that can be used.
const VolumeStateActive = 1

// Link and revision states.
const (
	LinkStateDraft   = 0
	LinkStateActive  = 1
	LinkStateTrashed = 2

	RevisionStateDraft  = 0
	RevisionStateActive = 1
)

// Volume is a storage volume with its main share.
type Volume struct {
	VolumeID string      `json:"VolumeID"`
	State    int         `json:"State"`
	Share    VolumeShare `json:"Share"`
}

// VolumeShare points to the main share of a volume.
type VolumeShare struct {
	ShareID string `json:"ShareID"`
	LinkID  string `json:"LinkID"`
}

// Share is the encrypted root of a namespace. The share key is unlocked with
// Passphrase, which is encrypted to one of the keys of AddressID.
type Share struct {
	ShareID  string `json:"ShareID"`
	VolumeID string `json:"VolumeID"`
	LinkID   string `json:"LinkID"`

	// AddressID owns the share; empty when the owner is not known.
	AddressID    string `json:"AddressID"`
	AddressKeyID string `json:"AddressKeyID"`
	Creator      string `json:"Creator"`

	Key                 string `json:"Key"`
	Passphrase          string `json:"Passphrase"`
	PassphraseSignature string `json:"PassphraseSignature"`
}

// Link is a node of the encrypted tree: a folder or a file.
//
// Name and MIMEType are encrypted under the container key (the parent
// folder's node key, or the share key for the root). NodePassphrase is
// encrypted to the container key as well; NodeKey is locked with it.
type Link struct {
	LinkID       string   `json:"LinkID"`
	ParentLinkID string   `json:"ParentLinkID"`
	Type         LinkType `json:"Type"`
	State        int      `json:"State"`

	Name               string `json:"Name"`
	NameSignatureEmail string `json:"NameSignatureEmail"`
	Hash               string `json:"Hash"`
	MIMEType           string `json:"MIMEType"`
	Size               int64  `json:"Size"`

	NodeKey                 string `json:"NodeKey"`
	NodePassphrase          string `json:"NodePassphrase"`
	NodePassphraseSignature string `json:"NodePassphraseSignature"`
	SignatureEmail          string `json:"SignatureEmail"`

	FileProperties   *FileProperties   `json:"FileProperties,omitempty"`
	FolderProperties *FolderProperties `json:"FolderProperties,omitempty"`
}

// IsFolder reports whether the link is a folder.
func (l Link) IsFolder() bool { return l.Type == LinkTypeFolder }

// IsActive reports whether the link is visible in its folder. Drafts of
// unfinished uploads and trashed links are not.
func (l Link) IsActive() bool { return l.State == LinkStateActive }

// FileProperties holds the file specific part of a link.
type FileProperties struct {
	// ContentKeyPacket is the base64 key packet of the content session key,
	// encrypted to the node key.
	ContentKeyPacket          string            `json:"ContentKeyPacket"`
	ContentKeyPacketSignature string            `json:"ContentKeyPacketSignature"`
	ActiveRevision            *RevisionMetadata `json:"ActiveRevision,omitempty"`
}

// FolderProperties holds the folder specific part of a link.
type FolderProperties struct {
	// NodeHashKey is encrypted to the folder's own node key and keys the
	// HMAC used for child name lookup hashes.
	NodeHashKey string `json:"NodeHashKey"`
}

// RevisionMetadata is the short description of a revision embedded in links.
type RevisionMetadata struct {
	ID                string `json:"ID"`
	State             int    `json:"State"`
	Size              int64  `json:"Size"`
	ManifestSignature string `json:"ManifestSignature"`
	SignatureAddress  string `json:"SignatureAddress"`
}

// Revision is a file revision with its block list.
type Revision struct {
	RevisionMetadata
	XAttr  string  `json:"XAttr,omitempty"`
	Blocks []Block `json:"Blocks"`
}

// Block is the download side description of one stored block.
type Block struct {
	Index   int    `json:"Index"`
	BareURL string `json:"BareURL"`
	Token   string `json:"Token"`

	// Hash is the base64 SHA-256 of the block ciphertext.
	Hash           string `json:"Hash"`
	EncSignature   string `json:"EncSignature"`
	SignatureEmail string `json:"SignatureEmail"`
}

// CreateFolderReq registers a new folder under ParentLinkID.
type CreateFolderReq struct {
	ParentLinkID string `json:"ParentLinkID"`

	Name string `json:"Name"`
	Hash string `json:"Hash"`

	NodeKey                 string `json:"NodeKey"`
	NodeHashKey             string `json:"NodeHashKey"`
	NodePassphrase          string `json:"NodePassphrase"`
	NodePassphraseSignature string `json:"NodePassphraseSignature"`
	SignatureAddress        string `json:"SignatureAddress"`
}

// CreateFileReq registers a new file and its first, unfinalized revision.
type CreateFileReq struct {
	ParentLinkID string `json:"ParentLinkID"`

	Name     string `json:"Name"`
	Hash     string `json:"Hash"`
	MIMEType string `json:"MIMEType"`

	NodeKey                 string `json:"NodeKey"`
	NodePassphrase          string `json:"NodePassphrase"`
	NodePassphraseSignature string `json:"NodePassphraseSignature"`
	SignatureAddress        string `json:"SignatureAddress"`

	ContentKeyPacket          string `json:"ContentKeyPacket"`
	ContentKeyPacketSignature string `json:"ContentKeyPacketSignature"`
}

// CreatedNode is returned by node creation calls.
type CreatedNode struct {
	ID         string `json:"ID"`
	RevisionID string `json:"RevisionID,omitempty"`
}

// VerificationData is the per-revision proof-of-possession input.
type VerificationData struct {
	// VerificationCode is base64.
	VerificationCode string `json:"VerificationCode"`
	ContentKeyPacket string `json:"ContentKeyPacket"`
}

// BlockUploadReq asks for upload destinations of encrypted blocks.
type BlockUploadReq struct {
	AddressID  string `json:"AddressID"`
	ShareID    string `json:"ShareID"`
	LinkID     string `json:"LinkID"`
	RevisionID string `json:"RevisionID"`

	BlockList []BlockUploadInfo `json:"BlockList"`
}

// BlockUploadInfo describes one block in a [BlockUploadReq].
type BlockUploadInfo struct {
	Index        int           `json:"Index"`
	Size         int64         `json:"Size"`
	EncSignature string        `json:"EncSignature"`
	Hash         string        `json:"Hash"`
	Verifier     BlockVerifier `json:"Verifier"`
}

// BlockVerifier carries the base64 verification token of a block.
type BlockVerifier struct {
	Token string `json:"Token"`
}

// BlockUploadLink is a signed destination for one block.
type BlockUploadLink struct {
	Token   string `json:"Token"`
	BareURL string `json:"BareURL"`
}

// CommitRevisionReq finalizes a revision.
type CommitRevisionReq struct {
	ManifestSignature string `json:"ManifestSignature"`
	SignatureAddress  string `json:"SignatureAddress"`
	XAttr             string `json:"XAttr,omitempty"`
}

// XAttr is the plaintext form of the encrypted extended attributes stored
// with a revision.
type XAttr struct {
	Common XAttrCommon `json:"Common"`
}

// XAttrCommon holds the attributes every client understands.
type XAttrCommon struct {
	ModificationTime string `json:"ModificationTime"`
	Size             int64  `json:"Size"`
	BlockSizes       []int  `json:"BlockSizes"`
}
