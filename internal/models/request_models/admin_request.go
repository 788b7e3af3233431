package request_models

type RunPatchesRequest struct {
	Names []string `json:"names"`
}
